package main

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"dscheirer.com/segscroll/sevenseg_backpack"
	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
)

var testSettings configSettings
var cfgFile string = "./test/config.conf"

// 2020-02-02 10:00:00
var testStart = time.Date(2020, time.February, 2, 10, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	testSettings = initSettings(cfgFile)
	testlog, err := setupLogging(testSettings, false)
	if err != nil {
		log.Fatal(err)
	}

	// run the tests
	code := m.Run()
	testlog.Close()

	os.Exit(code)
}

func logCaller(pc uintptr, file string, line int, ok bool) {
	if !ok {
		file = "?"
		line = 0
	}

	fn := runtime.FuncForPC(pc)
	var fnName string
	if fn == nil {
		fnName = "?()"
	} else {
		dotName := filepath.Ext(fn.Name())
		fnName = strings.TrimLeft(dotName, ".") + "()"
	}

	log.Printf("Starting %s (%s:%d)", fnName, filepath.Base(file), line)
}

// testUnit records what the display loop sends, it is read from the test
// goroutine while the loop writes to it
type testUnit struct {
	mu     sync.Mutex
	cmds   []byte
	writes [][]uint16
}

func (tu *testUnit) WriteCommand(cmd byte) error {
	tu.mu.Lock()
	defer tu.mu.Unlock()
	tu.cmds = append(tu.cmds, cmd)
	return nil
}

func (tu *testUnit) WriteCells(addr byte, cells []uint16) error {
	tu.mu.Lock()
	defer tu.mu.Unlock()
	tu.writes = append(tu.writes, append([]uint16(nil), cells...))
	return nil
}

func (tu *testUnit) commands() []byte {
	tu.mu.Lock()
	defer tu.mu.Unlock()
	return append([]byte(nil), tu.cmds...)
}

func (tu *testUnit) lastCommand() byte {
	tu.mu.Lock()
	defer tu.mu.Unlock()
	if len(tu.cmds) == 0 {
		return 0
	}
	return tu.cmds[len(tu.cmds)-1]
}

func (tu *testUnit) last() []uint16 {
	tu.mu.Lock()
	defer tu.mu.Unlock()
	if len(tu.writes) == 0 {
		return nil
	}
	return tu.writes[len(tu.writes)-1]
}

// the cells one unit shows for text at offset 0
func window(text string) []uint16 {
	return sevenseg_backpack.RenderWindow(sevenseg_backpack.Encode(nil, text), 0, 1, sevenseg_backpack.ScrollOff)
}

// each test gets its own copy of the settings
func (s configSettings) clone() configSettings {
	c := make(map[string]interface{}, len(s.settings))
	for k, v := range s.settings {
		c[k] = v
	}
	return configSettings{settings: c}
}

func initTestRuntime(settings configSettings) (runtimeConfig, *testUnit) {
	settings = settings.clone()
	unit := &testUnit{}
	level := settings.GetFloat(sBrightness)
	display, err := sevenseg_backpack.New([]sevenseg_backpack.Unit{unit}, &sevenseg_backpack.Opts{
		Scroll:     scrollConfig(settings),
		Brightness: &level,
	})
	if err != nil {
		log.Fatal(err)
	}

	rt := runtimeConfig{
		settings:      settings,
		clock:         clockwork.NewFakeClockAt(testStart),
		comms:         initCommChannels(),
		display:       display,
		content:       &textContent{text: settings.GetString(sText)},
		buttons:       &noButtons{},
		configService: &testConfigService{},
		status:        &statusBoard{},
		logger:        &ThreadLogger{name: "Test"},
	}
	return rt, unit
}

func testRuntime() (runtimeConfig, clockwork.FakeClock, *testUnit) {
	// make rt for test, log the start of the test
	logCaller(runtime.Caller(1))
	rt, unit := initTestRuntime(testSettings)
	return rt, rt.clock.(clockwork.FakeClock), unit
}

// run a worker loop, the returned channel closes when it exits
func testGo(rt runtimeConfig, loop func(rt runtimeConfig)) chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		loop(rt)
	}()
	return done
}

// advance the clock in sleep sized steps, letting the loop go back to
// sleep each time
func testBlockDuration(clock clockwork.FakeClock, sleep time.Duration, total time.Duration) {
	for d := time.Duration(0); d < total; d += sleep {
		clock.BlockUntil(1)
		clock.Advance(sleep)
	}
	clock.BlockUntil(1)
}

// send an effect and let the loop handle it
func testEffect(clock clockwork.FakeClock, comms commChannels, e displayEffect) {
	clock.BlockUntil(1)
	comms.effects <- e
	clock.Advance(dDisplaySleep)
	clock.BlockUntil(1)
}

func testQuit(rt runtimeConfig, sleep time.Duration, done chan struct{}) {
	closeQuit(rt.comms)
	rt.clock.(clockwork.FakeClock).Advance(sleep)
	<-done
}

func effectRead(t *testing.T, c chan displayEffect) displayEffect {
	select {
	case e := <-c:
		return e
	default:
		assert.Assert(t, false, "Nothing to read from effect channel")
	}
	return displayEffect{}
}

func effectNoRead(t *testing.T, c chan displayEffect) {
	select {
	case e := <-c:
		assert.Assert(t, false, "Got an unexpected value from effect channel: %+v", e)
	default:
	}
}
