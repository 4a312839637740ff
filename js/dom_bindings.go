package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/delegate/dom"
)

// DOMBinder creates JavaScript wrappers for dom nodes. Each node maps to a
// single JS object, so identity comparisons in scripts hold.
type DOMBinder struct {
	runtime *Runtime
	nodeMap map[*dom.Node]*goja.Object // Cache to return same JS object for same DOM node
}

// NewDOMBinder creates a new DOM binder.
func NewDOMBinder(runtime *Runtime) *DOMBinder {
	return &DOMBinder{
		runtime: runtime,
		nodeMap: make(map[*dom.Node]*goja.Object),
	}
}

// BindDocument wraps doc and installs it as the global "document".
func (b *DOMBinder) BindDocument(doc *dom.Document) *goja.Object {
	vm := b.runtime.vm
	jsDoc := b.BindNode(doc.AsNode())

	jsDoc.DefineAccessorProperty("documentElement", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.nodeValue(elementNode(doc.DocumentElement()))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsDoc.DefineAccessorProperty("body", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.nodeValue(elementNode(doc.Body()))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsDoc.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("createElement requires a tag name"))
		}
		return b.BindNode(doc.CreateElement(call.Arguments[0].String()).AsNode())
	})

	jsDoc.Set("createTextNode", func(call goja.FunctionCall) goja.Value {
		data := ""
		if len(call.Arguments) > 0 {
			data = call.Arguments[0].String()
		}
		return b.BindNode(doc.CreateTextNode(data))
	})

	jsDoc.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Null()
		}
		return b.nodeValue(elementNode(doc.GetElementById(call.Arguments[0].String())))
	})

	vm.Set("document", jsDoc)
	return jsDoc
}

// elementNode converts a possibly nil element into a possibly nil node.
func elementNode(el *dom.Element) *dom.Node {
	if el == nil {
		return nil
	}
	return el.AsNode()
}

// nodeValue returns the wrapper for node, or null.
func (b *DOMBinder) nodeValue(node *dom.Node) goja.Value {
	if node == nil {
		return goja.Null()
	}
	return b.BindNode(node)
}

// NodeFromValue returns the dom node wrapped by v, or nil if v is not a
// node wrapper.
func (b *DOMBinder) NodeFromValue(v goja.Value) *dom.Node {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil
	}
	goNode := obj.Get("_goNode")
	if goNode == nil {
		return nil
	}
	node, _ := goNode.Export().(*dom.Node)
	return node
}

// BindNode returns the JS wrapper for node, creating it on first use.
func (b *DOMBinder) BindNode(node *dom.Node) *goja.Object {
	if node == nil {
		return nil
	}
	if jsObj, ok := b.nodeMap[node]; ok {
		return jsObj
	}

	vm := b.runtime.vm
	jsNode := vm.NewObject()
	b.nodeMap[node] = jsNode

	jsNode.Set("_goNode", node)
	jsNode.Set("nodeType", int(node.NodeType()))
	jsNode.Set("nodeName", node.NodeName())

	jsNode.DefineAccessorProperty("parentNode", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.nodeValue(node.ParentNode())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsNode.DefineAccessorProperty("textContent", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(node.TextContent())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			node.SetTextContent(call.Arguments[0].String())
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsNode.Set("appendChild", func(call goja.FunctionCall) goja.Value {
		child := b.NodeFromValue(call.Argument(0))
		if child == nil {
			panic(vm.NewTypeError("appendChild requires a node"))
		}
		if _, err := node.AppendChildWithError(child); err != nil {
			b.runtime.throw(err)
		}
		return call.Argument(0)
	})

	jsNode.Set("removeChild", func(call goja.FunctionCall) goja.Value {
		child := b.NodeFromValue(call.Argument(0))
		if _, err := node.RemoveChildWithError(child); err != nil {
			b.runtime.throw(err)
		}
		return call.Argument(0)
	})

	jsNode.Set("contains", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(node.Contains(b.NodeFromValue(call.Argument(0))))
	})

	jsNode.Set("addEventListener", func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(1))
		if !ok {
			return goja.Undefined()
		}
		id := node.AddEventListener(call.Argument(0).String(), func(e *dom.Event) {
			if _, err := fn(b.BindNode(e.CurrentTarget), b.eventObject(e)); err != nil {
				b.runtime.throw(err)
			}
		})
		return vm.ToValue(uint64(id))
	})

	jsNode.Set("removeEventListener", func(call goja.FunctionCall) goja.Value {
		arg := call.Argument(0)
		if id := arg.ToInteger(); id > 0 {
			return vm.ToValue(node.RemoveEventListenerByID(dom.ListenerID(id)))
		}
		return vm.ToValue(node.RemoveEventListener(arg.String()) > 0)
	})

	// trigger dispatches a bubbling synthetic event, as jQuery's does.
	jsNode.Set("trigger", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("trigger requires an event type"))
		}
		return vm.ToValue(node.Trigger(call.Arguments[0].String()))
	})

	if el := node.AsElement(); el != nil {
		b.bindElement(jsNode, el)
	}
	return jsNode
}

// bindElement adds element-only properties to a node wrapper.
func (b *DOMBinder) bindElement(jsEl *goja.Object, el *dom.Element) {
	vm := b.runtime.vm

	jsEl.Set("tagName", el.TagName())

	jsEl.DefineAccessorProperty("id", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.Id())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			el.SetId(call.Arguments[0].String())
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("innerHTML", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.InnerHTML())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			if err := el.SetInnerHTML(call.Arguments[0].String()); err != nil {
				b.runtime.throw(err)
			}
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		if !el.HasAttribute(name) {
			return goja.Null()
		}
		return vm.ToValue(el.GetAttribute(name))
	})

	jsEl.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		if err := el.SetAttributeWithError(call.Argument(0).String(), call.Argument(1).String()); err != nil {
			b.runtime.throw(err)
		}
		return goja.Undefined()
	})

	jsEl.Set("hasAttribute", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.HasAttribute(call.Argument(0).String()))
	})

	jsEl.Set("removeAttribute", func(call goja.FunctionCall) goja.Value {
		el.RemoveAttribute(call.Argument(0).String())
		return goja.Undefined()
	})

	jsEl.Set("remove", func(call goja.FunctionCall) goja.Value {
		el.Remove()
		return goja.Undefined()
	})
}

// eventObject builds the JS view of a native event.
func (b *DOMBinder) eventObject(e *dom.Event) *goja.Object {
	vm := b.runtime.vm
	obj := vm.NewObject()
	obj.Set("type", e.Type)
	obj.Set("target", b.nodeValue(e.Target))
	obj.Set("currentTarget", b.nodeValue(e.CurrentTarget))
	obj.Set("bubbles", e.Bubbles)
	obj.Set("cancelable", e.Cancelable)
	obj.DefineAccessorProperty("defaultPrevented", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(e.DefaultPrevented)
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.Set("preventDefault", func(call goja.FunctionCall) goja.Value {
		e.PreventDefault()
		return goja.Undefined()
	})
	obj.Set("stopPropagation", func(call goja.FunctionCall) goja.Value {
		e.StopPropagation()
		return goja.Undefined()
	})
	obj.Set("stopImmediatePropagation", func(call goja.FunctionCall) goja.Value {
		e.StopImmediatePropagation()
		return goja.Undefined()
	})
	return obj
}
