package main

import (
	"context"
	"log"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"golang.org/x/net/netutil"
)

type httpConfigService struct {
	srv     *http.Server
	handler *APIHandler
	addr    net.Addr
}

func newRouter(handler *APIHandler) *mux.Router {
	r := mux.NewRouter()

	// auth middleware
	r.Use(handler.BasicAuth)
	// api server
	r.HandleFunc("/api/status", handler.apiStatus).Methods("GET")
	r.HandleFunc("/api/print", handler.apiPrint).Methods("POST")
	r.HandleFunc("/api/brightness", handler.apiBrightness).Methods("POST")

	// root handler
	r.HandleFunc("/", handler.rootHandler)
	return r
}

func (h *httpConfigService) launch(handler *APIHandler, addr string, maxConns int) error {
	h.handler = handler

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", addr)
	}
	h.addr = l.Addr()
	if maxConns > 0 {
		l = netutil.LimitListener(l, maxConns)
	}

	h.srv = &http.Server{Handler: newRouter(handler)}

	// add to the wg
	wg.Add(1)

	// launch the server
	go func() {
		defer wg.Done()
		log.Println("starting config service http server")
		err := h.srv.Serve(l)
		log.Print(err)
		log.Print("Exiting config service")
	}()
	return nil
}

func (h *httpConfigService) stop() {
	if h.srv != nil {
		h.srv.Shutdown(context.Background())
	}
}
