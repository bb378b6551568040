// Package web is a small net/http router that keeps an inspectable route
// table. Every route records its URL resource, its declared method and the
// handler it dispatches to, so tools can walk the table after the
// application has been assembled.
//
// Two kinds of handlers can be registered. Function routes bind one
// *Handler to one method:
//
//	r := web.New()
//	web.Post(r, "/items", createItem, web.WithDoc(createItemDoc))
//
// Class-based views serve several methods from one value. A view declares
// the verbs it supports by filling the slots of a MethodSet:
//
//	type itemView struct{}
//
//	func (itemView) Methods() web.MethodSet {
//	    return web.MethodSet{Get: getItem, Delete: deleteItem}
//	}
//
//	web.RegisterView(r, "/items/{id}", web.NewView(itemView{}))
//
// Handlers get a stable HandlerID the first time they are registered. The
// same handler value registered under several routes keeps that ID.
package web
