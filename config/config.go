package config

import (
	"coilcalc/model"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

type Config struct {
	Addr string // websocket 监听地址

	LogLevel string

	Workers int // 并行采样的 worker 数, <= 0 时使用 CPU 数

	XRange model.Range
	ZRange model.Range

	Loop model.CurrentLoop // 初始线圈

	PresetDB string // sqlite 文件路径, 为空则不启用预设

	PlotWidth  float64 // 单位 inch
	PlotHeight float64
}

// Load reads the ini file at path. A missing or broken file falls back to the
// defaults of the coil calculator.
func Load(path string) *Config {
	file, err := ini.Load(path)
	if err != nil {
		log.WithFields(log.Fields{
			"path": path,
			"err":  err,
		}).Warn("配置文件读取错误, 使用默认配置")
		file = ini.Empty()
	}
	return loadCfg(file)
}

func loadCfg(file *ini.File) *Config {
	grid := file.Section("grid")
	loop := file.Section("loop")
	return &Config{
		Addr:     file.Section("server").Key("Addr").MustString(":9000"),
		LogLevel: file.Section("log").Key("Level").MustString("info"),
		Workers:  file.Section("calculator").Key("Workers").MustInt(0),
		XRange: model.NewRange(
			grid.Key("XMin").MustFloat64(-30),
			grid.Key("XMax").MustFloat64(30),
			grid.Key("XCount").MustInt(20),
		),
		ZRange: model.NewRange(
			grid.Key("ZMin").MustFloat64(-30),
			grid.Key("ZMax").MustFloat64(30),
			grid.Key("ZCount").MustInt(20),
		),
		Loop: model.NewCurrentLoop(
			loop.Key("X").MustFloat64(0),
			loop.Key("Y").MustFloat64(0),
			loop.Key("Z").MustFloat64(0),
			loop.Key("Radius").MustFloat64(5),
			loop.Key("Current").MustFloat64(1),
		),
		PresetDB:   file.Section("preset").Key("DB").MustString(""),
		PlotWidth:  file.Section("render").Key("Width").MustFloat64(6),
		PlotHeight: file.Section("render").Key("Height").MustFloat64(6),
	}
}

// SetupLog applies the configured level to the logrus standard logger.
func (c *Config) SetupLog() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("level", c.LogLevel).Warn("未知日志级别, 使用 info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
