package main

import (
	"flag"
	"net/http"

	"coilcalc/config"
	"coilcalc/preset"
	"coilcalc/server"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func main() {
	cfgPath := flag.String("config", "conf/config.ini", "配置文件路径")
	flag.Parse()

	cfg := config.Load(*cfgPath)
	cfg.SetupLog()

	var store *preset.Store
	if cfg.PresetDB != "" {
		var err error
		store, err = preset.Open(cfg.PresetDB)
		if err != nil {
			log.Fatal("open preset store: ", err)
		}
	}

	upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	s := server.NewServer(cfg, upgrader, store)
	err := s.Serve()
	// log.Fatal 不执行 defer, 先关闭数据库
	if store != nil {
		if cerr := store.Close(); cerr != nil {
			log.Error("close preset store: ", cerr)
		}
	}
	log.Fatal("ListenAndServe: ", err)
}
