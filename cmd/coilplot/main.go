// Command coilplot samples the field of the configured loops, or of a saved
// preset, and writes the arrow plot to an image file.
package main

import (
	"flag"

	"coilcalc/coil_system"
	"coilcalc/config"
	"coilcalc/model"
	"coilcalc/preset"
	"coilcalc/render"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot/vg"
)

func main() {
	cfgPath := flag.String("config", "conf/config.ini", "配置文件路径")
	dbPath := flag.String("db", "", "预设数据库路径, 默认取配置文件")
	name := flag.String("preset", "", "预设名称, 为空时使用配置文件中的线圈")
	out := flag.String("out", "field.png", "输出文件, 格式由扩展名决定 (png, svg, pdf)")
	flag.Parse()

	cfg := config.Load(*cfgPath)
	cfg.SetupLog()

	loops := []model.CurrentLoop{cfg.Loop}
	xRange, zRange := cfg.XRange, cfg.ZRange
	if *name != "" {
		path := *dbPath
		if path == "" {
			path = cfg.PresetDB
		}
		store, err := preset.Open(path)
		if err != nil {
			log.Fatal("open preset store: ", err)
		}
		p, err := store.Load(*name)
		store.Close()
		if err != nil {
			log.Fatal(err)
		}
		loops, xRange, zRange = p.Loops, p.XRange, p.ZRange
	}

	system, err := coil_system.NewCoilSystem(loops, xRange, zRange, cfg.Workers)
	if err != nil {
		log.Fatal("sample field: ", err)
	}
	data := system.BuildData()
	err = render.Save(data, vg.Length(cfg.PlotWidth)*vg.Inch, vg.Length(cfg.PlotHeight)*vg.Inch, *out)
	if err != nil {
		log.Fatal("save plot: ", err)
	}
	log.WithFields(log.Fields{
		"out":        *out,
		"loops":      len(loops),
		"baseLength": data.BaseLength,
	}).Info("写入磁场图")
}
