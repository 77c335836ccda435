package model

// 前后端通信消息结构
// Content carries the JSON text of the request or reply body.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 请求类型
const (
	TypeField   = "field"
	TypeLoops   = "loops"
	TypeAdd     = "add"
	TypeRemove  = "remove"
	TypeMove    = "move"
	TypeDrag    = "drag"
	TypeGrid    = "grid"
	TypeSave    = "save"
	TypeLoad    = "load"
	TypePresets = "presets"
	TypeDelete  = "delete"

	// 仅用于回复
	TypeSaved   = "saved"
	TypeDeleted = "deleted"
	TypeError   = "error"
)

// 采样结果，推送给前端
type FieldData struct {
	Loops      []CurrentLoop `json:"loops"`
	XRange     Range         `json:"x_range"`
	ZRange     Range         `json:"z_range"`
	Field      FieldGrid     `json:"field"`
	BaseLength float64       `json:"base_length"`
}

// 线圈索引请求
type IndexReq struct {
	Index int `json:"index"`
}

// 移动线圈请求, move 为中心坐标, drag 为左侧导线截面坐标
type MoveReq struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Z     float64 `json:"z"`
}

// 采样网格请求
type GridReq struct {
	XRange Range `json:"x_range"`
	ZRange Range `json:"z_range"`
}

// 预设请求
type PresetReq struct {
	Name string `json:"name"`
}
