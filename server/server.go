package server

import (
	"net/http"

	"coilcalc/coil_system"
	"coilcalc/config"
	"coilcalc/model"
	"coilcalc/preset"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	cfg      *config.Config
	store    *preset.Store // 可为 nil
}

func NewServer(cfg *config.Config, upgrader websocket.Upgrader, store *preset.Store) *Server {
	return &Server{
		addr:     cfg.Addr,
		upgrader: upgrader,
		cfg:      cfg,
		store:    store,
	}
}

// 每个连接拥有独立的线圈系统
func (s *Server) newCoilSystem() (*coil_system.CoilSystem, error) {
	return coil_system.NewCoilSystem(
		[]model.CurrentLoop{s.cfg.Loop},
		s.cfg.XRange,
		s.cfg.ZRange,
		s.cfg.Workers,
	)
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	system, err := s.newCoilSystem()
	if err != nil {
		log.Println("init coil system err: ", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	hub := NewHub(system, s.store)
	hub.conn = conn
	log.WithField("session", hub.id).Info("client connected")

	go hub.handleRequest()
	go hub.handleResponse()
	defer hub.close()
	for {
		var msg model.Msg
		err = conn.ReadJSON(&msg)
		if err != nil {
			log.WithField("session", hub.id).Info("client disconnected: ", err)
			return
		}
		hub.msg <- msg
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

// Serve blocks until the listener fails and returns that error.
func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("listening")
	return http.ListenAndServe(s.addr, s.Handler())
}
