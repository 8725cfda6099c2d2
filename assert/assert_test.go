package assert

import (
	"testing"

	"github.com/oomph-ac/stalk/oerror"
)

func TestIsTrue(t *testing.T) {
	IsTrue(true, "never raised")

	defer func() {
		err, ok := recover().(*oerror.StalkError)
		if !ok {
			t.Fatalf("expected a StalkError panic")
		}
		if err.Error() != "height 3 over cap 2" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}()
	IsTrue(false, "height %d over cap %d", 3, 2)
}
