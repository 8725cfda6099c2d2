package assert

import "github.com/oomph-ac/stalk/oerror"

// IsTrue panics with a formatted StalkError if ok is false.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
