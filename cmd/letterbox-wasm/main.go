//go:build js && wasm

// Command letterbox-wasm runs the input collector in the browser, against
// the page served alongside the solving service.
package main

import (
	"context"
	"strings"
	"syscall/js"

	"letterbox/internal/collector"
	"letterbox/internal/config"
	"letterbox/internal/dom"
	"letterbox/internal/logging"
	"letterbox/internal/solver"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.Input.OnIncomplete = queryParam("on_incomplete", cfg.Input.OnIncomplete)

	// os.Stdout is the browser console under js/wasm
	err := logging.InitializeWithFallback(logging.Options{
		Level:  queryParam("log", "info"),
		Format: "console",
		File:   "stdout",
	})
	if err != nil {
		js.Global().Get("console").Call("error", "letterbox: "+err.Error()+"; logging at info")
	}

	start := func() {
		page, err := dom.Find()
		if err != nil {
			logging.BootError("letterbox disabled: %v", err)
			return
		}

		client := solver.NewClient(endpoint(cfg), solver.WithTimeout(cfg.GetTimeout()))
		c := collector.New(context.Background(), page, client, collector.Options{
			PromptOnIncomplete: cfg.PromptOnIncomplete(),
			Separator:          cfg.UI.Separator,
		})
		if !c.Init() {
			return
		}
		page.Bind(c)
		logging.Boot("bound to page, solving via %s", client.Endpoint())

		var onHide js.Func
		onHide = js.FuncOf(func(this js.Value, args []js.Value) any {
			// Close waits for a pending solve, so stay off the event loop
			go func() {
				c.Close()
				page.Release()
				onHide.Release()
				logging.CloseAll()
			}()
			return nil
		})
		js.Global().Call("addEventListener", "pagehide", onHide)
	}

	doc := js.Global().Get("document")
	if doc.Get("readyState").String() == "loading" {
		var onReady js.Func
		onReady = js.FuncOf(func(this js.Value, args []js.Value) any {
			start()
			onReady.Release()
			return nil
		})
		doc.Call("addEventListener", "DOMContentLoaded", onReady)
	} else {
		start()
	}

	// Keep the runtime alive for the event handlers
	select {}
}

// endpoint resolves the solve path against the page origin; net/http
// needs an absolute URL.
func endpoint(cfg *config.Config) string {
	origin := js.Global().Get("location").Get("origin").String()
	return strings.TrimRight(origin, "/") + "/" + strings.TrimLeft(cfg.Solver.Path, "/")
}

func queryParam(name, fallback string) string {
	params := js.Global().Get("URLSearchParams").New(js.Global().Get("location").Get("search"))
	v := params.Call("get", name)
	if v.IsNull() || v.String() == "" {
		return fallback
	}
	return v.String()
}
