//go:build js && wasm

package dom

import (
	"errors"
	"syscall/js"

	"letterbox/internal/collector"
	"letterbox/internal/logging"
)

// Page is a collector.View over the live document.
type Page struct {
	doc      js.Value
	solveBtn js.Value
	clearBtn js.Value
	results  js.Value
	list     js.Value
	inputs   []js.Value

	funcs []js.Func
}

var _ collector.View = (*Page)(nil)

// Find locates the page elements. Missing letter inputs are not an error:
// the collector stays inert when it does not find exactly 12 of them.
func Find() (*Page, error) {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return nil, errors.New("no document")
	}

	p := &Page{
		doc:      doc,
		solveBtn: doc.Call("getElementById", SolveButtonID),
		clearBtn: doc.Call("getElementById", ClearButtonID),
		results:  doc.Call("getElementById", ResultsID),
		list:     doc.Call("getElementById", SolutionsListID),
	}
	if !p.solveBtn.Truthy() || !p.results.Truthy() || !p.list.Truthy() {
		return nil, errors.New("page is missing #solveBtn, #results or #solutionsList")
	}

	nodes := doc.Call("querySelectorAll", "."+LetterClass)
	for i := 0; i < nodes.Length(); i++ {
		p.inputs = append(p.inputs, nodes.Index(i))
	}

	logging.BootDebug("page elements: solveBtn=%t clearBtn=%t results=%t solutionsList=%t letterInputs=%d",
		p.solveBtn.Truthy(), p.clearBtn.Truthy(), p.results.Truthy(), p.list.Truthy(), len(p.inputs))
	return p, nil
}

func (p *Page) CellCount() int { return len(p.inputs) }

func (p *Page) CellValue(i int) string {
	return p.inputs[i].Get("value").String()
}

func (p *Page) SetCellValue(i int, v string) {
	p.inputs[i].Set("value", v)
}

func (p *Page) FocusCell(i int) {
	p.inputs[i].Call("focus")
}

func (p *Page) SetBusy(busy bool) {
	p.solveBtn.Set("disabled", busy)
	if busy {
		p.solveBtn.Set("innerHTML", SpinnerHTML+collector.BusyLabel)
		return
	}
	p.solveBtn.Set("textContent", collector.SubmitLabel)
}

func (p *Page) ClearResults() {
	p.list.Set("innerHTML", "")
}

func (p *Page) ShowResults(visible bool) {
	classes := p.results.Get("classList")
	if visible {
		classes.Call("remove", HiddenClass)
	} else {
		classes.Call("add", HiddenClass)
	}
}

// AppendSolution adds one list entry. Text goes in through textContent so
// solver output is never parsed as markup.
func (p *Page) AppendSolution(chain, score string) {
	item := p.doc.Call("createElement", "div")
	item.Set("className", "list-group-item solution-item")

	words := p.doc.Call("createElement", "div")
	words.Set("className", "solution-words")
	words.Set("textContent", chain)

	sc := p.doc.Call("createElement", "div")
	sc.Set("className", "solution-score")
	sc.Set("textContent", score)

	item.Call("appendChild", words)
	item.Call("appendChild", sc)
	p.list.Call("appendChild", item)
}

func (p *Page) Alert(msg string) {
	js.Global().Call("alert", msg)
}

// Bind attaches the page's event listeners to c.
func (p *Page) Bind(c *collector.Collector) {
	for i, input := range p.inputs {
		i := i
		p.listen(input, "input", func(js.Value) {
			c.Input(i)
		})
		p.listen(input, "keypress", func(e js.Value) {
			if !c.KeyPress(i, e.Get("key").String()) {
				e.Call("preventDefault")
			}
		})
		p.listen(input, "keydown", func(e js.Value) {
			if e.Get("key").String() == "Enter" {
				e.Call("preventDefault")
				c.KeyDown(i, "Enter")
			}
		})
	}

	p.listen(p.solveBtn, "click", func(js.Value) { c.Submit() })
	if p.clearBtn.Truthy() {
		p.listen(p.clearBtn, "click", func(js.Value) { c.Clear() })
	}
}

// Release detaches every listener Bind added.
func (p *Page) Release() {
	for _, fn := range p.funcs {
		fn.Release()
	}
	p.funcs = nil
}

func (p *Page) listen(el js.Value, event string, handler func(e js.Value)) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		var e js.Value
		if len(args) > 0 {
			e = args[0]
		}
		handler(e)
		return nil
	})
	p.funcs = append(p.funcs, cb)
	el.Call("addEventListener", event, cb)
}
