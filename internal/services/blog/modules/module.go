// Package modules defines blog module registry helpers.
package modules

import (
	"github.com/penwright/blog/internal/services/blog/module"
	"github.com/penwright/blog/internal/services/blog/modules/admin"
	"github.com/penwright/blog/internal/services/blog/platform/modulehandler"
	"github.com/penwright/blog/internal/services/blog/postview"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries what the blog modules need. Posts is typed as the
// admin store contract, which also satisfies the public reader.
type Dependencies struct {
	Posts    admin.PostStore
	Renderer postview.Renderer
	Base     modulehandler.Base
}
