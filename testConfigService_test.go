package main

type testConfigService struct {
	handler  *APIHandler
	addr     string
	maxConns int
	stopped  bool
}

func (t *testConfigService) launch(handler *APIHandler, addr string, maxConns int) error {
	t.handler = handler
	t.addr = addr
	t.maxConns = maxConns
	return nil
}

func (t *testConfigService) stop() {
	t.stopped = true
}
