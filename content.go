package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"time"

	"dscheirer.com/segscroll/sevenseg_backpack"
	"github.com/lestrrat-go/strftime"
	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"
)

// a script gets this long when no refresh interval is set
const defaultLuaTimeout = time.Second

// a content source fills the display frame on every refresh
type content interface {
	name() string
	fill(rt runtimeConfig, w *sevenseg_backpack.Writer)
	close()
}

type clockContent struct {
	format string
}

func (cc *clockContent) name() string { return contentClock }

func (cc *clockContent) fill(rt runtimeConfig, w *sevenseg_backpack.Writer) {
	w.Strftime(cc.format, rt.clock.Now())
}

func (cc *clockContent) close() {}

type textContent struct {
	text string
}

func (tc *textContent) name() string { return contentText }

func (tc *textContent) fill(rt runtimeConfig, w *sevenseg_backpack.Writer) {
	w.Print(tc.text)
}

func (tc *textContent) close() {}

// luaContent runs a script on every refresh. The script sees a global
// `display` table:
//
//	display.print(s)         queue s for the frame
//	display.strftime(format) the current time, strftime(3) style
//
// A run is cut off after timeout. Anything printed before an error or the
// cutoff is thrown away and "Err" is shown.
type luaContent struct {
	L       *lua.LState
	chunk   *lua.LFunction
	source  string
	timeout time.Duration
}

func newLuaContent(source string, script string, timeout time.Duration) (*luaContent, error) {
	if timeout <= 0 {
		timeout = defaultLuaTimeout
	}
	L := lua.NewState()
	chunk, err := L.LoadString(script)
	if err != nil {
		L.Close()
		return nil, errors.Wrapf(err, "lua: %s", source)
	}
	return &luaContent{L: L, chunk: chunk, source: source, timeout: timeout}, nil
}

func loadLuaContent(path string, timeout time.Duration) (*luaContent, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "lua")
	}
	return newLuaContent(path, string(data), timeout)
}

func (lc *luaContent) name() string { return contentLua }

func (lc *luaContent) run(rt runtimeConfig) ([]string, error) {
	L := lc.L
	var out []string

	tbl := L.NewTable()
	L.SetField(tbl, "print", L.NewFunction(func(L *lua.LState) int {
		out = append(out, L.CheckString(1))
		return 0
	}))
	L.SetField(tbl, "strftime", L.NewFunction(func(L *lua.LState) int {
		s, err := strftime.Format(L.OptString(1, "%H:%M:%S"), rt.clock.Now())
		if err != nil {
			L.RaiseError("strftime: %v", err)
			return 0
		}
		L.Push(lua.LString(s))
		return 1
	}))
	L.SetGlobal("display", tbl)

	// wall time, the script runs on the host clock whatever rt.clock is
	ctx, cancel := context.WithTimeout(context.Background(), lc.timeout)
	defer cancel()
	L.SetContext(ctx)
	defer L.RemoveContext()

	L.Push(lc.chunk)
	err := L.PCall(0, lua.MultRet, nil)
	L.SetTop(0)
	return out, err
}

func (lc *luaContent) fill(rt runtimeConfig, w *sevenseg_backpack.Writer) {
	out, err := lc.run(rt)
	if err != nil {
		rt.logger.Printf("lua %s: %v", lc.source, err)
		w.Print("Err")
		return
	}
	for _, s := range out {
		w.Print(s)
	}
}

func (lc *luaContent) close() {
	lc.L.Close()
}

func newContent(settings configSettings) (content, error) {
	switch settings.GetString(sContent) {
	case contentClock:
		return &clockContent{format: settings.GetString(sTimeFormat)}, nil
	case contentText:
		return &textContent{text: settings.GetString(sText)}, nil
	case contentLua:
		return loadLuaContent(settings.GetString(sLuaScript), settings.GetDuration(sUpdateInterval))
	default:
		return nil, fmt.Errorf("Bad content: '%s'", settings.GetString(sContent))
	}
}
