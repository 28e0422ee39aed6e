// Package drivers is a convenience package that registers all built-in
// factory drivers. Import it with a blank identifier to make all drivers
// available:
//
//	import _ "github.com/nuln/sstream/drivers"
package drivers

import (
	"github.com/nuln/sstream"
	_ "github.com/nuln/sstream/driver/local"
	_ "github.com/nuln/sstream/driver/rclone"
)

// Init ensures all built-in drivers are registered.
// This is called automatically by importing the package.
func Init() {}

// List returns a list of all registered factory drivers.
func List() []string {
	return sstream.List()
}
