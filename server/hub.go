package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"coilcalc/coil_system"
	"coilcalc/model"
	"coilcalc/preset"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var errNoStore = errors.New("preset store is not enabled")

// Hub serves the requests of one websocket peer against its own coil system.
type Hub struct {
	id     string
	system *coil_system.CoilSystem
	store  *preset.Store
	conn   *websocket.Conn
	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
	done  chan struct{}
}

func NewHub(system *coil_system.CoilSystem, store *preset.Store) *Hub {
	return &Hub{
		id:     uuid.New().String(),
		system: system,
		store:  store,
		msg:    make(chan model.Msg, 10),
		reply:  make(chan model.Msg, 10),
		done:   make(chan struct{}),
	}
}

func (h *Hub) close() {
	close(h.done)
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.reply:
			err := h.conn.WriteJSON(&reply)
			if err != nil {
				log.Println("err: ", err)
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			reply := h.handle(msg)
			select {
			case h.reply <- reply:
			case <-h.done:
				return
			}
		case <-h.done:
			return
		}
	}
}

// handle runs one request and builds its reply. Failures become "error" replies
// and leave the coil system unchanged.
func (h *Hub) handle(msg model.Msg) model.Msg {
	var err error
	switch msg.Type {
	case model.TypeField:
	case model.TypeLoops:
		var loops []model.CurrentLoop
		if err = decode(msg, &loops); err == nil {
			err = h.system.SetLoops(loops)
		}
	case model.TypeAdd:
		var loop model.CurrentLoop
		if err = decode(msg, &loop); err == nil {
			err = h.system.AddLoop(loop)
		}
	case model.TypeRemove:
		var req model.IndexReq
		if err = decode(msg, &req); err == nil {
			err = h.system.RemoveLoop(req.Index)
		}
	case model.TypeMove:
		var req model.MoveReq
		if err = decode(msg, &req); err == nil {
			err = h.system.MoveLoop(req.Index, req.X, req.Z)
		}
	case model.TypeDrag:
		var req model.MoveReq
		if err = decode(msg, &req); err == nil {
			err = h.system.DragLoop(req.Index, req.X, req.Z)
		}
	case model.TypeGrid:
		var req model.GridReq
		if err = decode(msg, &req); err == nil {
			err = h.system.SetGrid(req.XRange, req.ZRange)
		}
	case model.TypeLoad:
		var req model.PresetReq
		if err = decode(msg, &req); err == nil {
			err = h.loadPreset(req.Name)
		}
	case model.TypeSave:
		var req model.PresetReq
		if err = decode(msg, &req); err == nil {
			err = h.savePreset(req.Name)
		}
		if err == nil {
			return model.Msg{Type: model.TypeSaved, Content: req.Name}
		}
	case model.TypeDelete:
		var req model.PresetReq
		if err = decode(msg, &req); err == nil {
			err = h.deletePreset(req.Name)
		}
		if err == nil {
			return model.Msg{Type: model.TypeDeleted, Content: req.Name}
		}
	case model.TypePresets:
		var names []string
		if names, err = h.listPresets(); err == nil {
			return encode(model.TypePresets, names)
		}
	default:
		err = fmt.Errorf("no such type: %q", msg.Type)
	}

	if err != nil {
		log.WithFields(log.Fields{
			"session": h.id,
			"type":    msg.Type,
		}).Warn(err)
		return model.Msg{Type: model.TypeError, Content: err.Error()}
	}
	return encode(model.TypeField, h.system.BuildData())
}

func (h *Hub) loadPreset(name string) error {
	if h.store == nil {
		return errNoStore
	}
	p, err := h.store.Load(name)
	if err != nil {
		return err
	}
	return h.system.Reset(p.Loops, p.XRange, p.ZRange)
}

func (h *Hub) savePreset(name string) error {
	if h.store == nil {
		return errNoStore
	}
	xRange, zRange := h.system.Grid()
	return h.store.Save(preset.Preset{
		Name:   name,
		Loops:  h.system.Loops(),
		XRange: xRange,
		ZRange: zRange,
	})
}

func (h *Hub) deletePreset(name string) error {
	if h.store == nil {
		return errNoStore
	}
	return h.store.Delete(name)
}

func (h *Hub) listPresets() ([]string, error) {
	if h.store == nil {
		return nil, errNoStore
	}
	return h.store.List()
}

func decode(msg model.Msg, v interface{}) error {
	if err := json.Unmarshal([]byte(msg.Content), v); err != nil {
		return fmt.Errorf("decode %s content: %w", msg.Type, err)
	}
	return nil
}

func encode(typ string, v interface{}) model.Msg {
	data, err := json.Marshal(v)
	if err != nil {
		return model.Msg{Type: model.TypeError, Content: err.Error()}
	}
	return model.Msg{Type: typ, Content: string(data)}
}
