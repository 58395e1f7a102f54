package diskvec_test

import (
	"fmt"
	"os"

	"github.com/krl/diskvec"
)

func ExampleOpen() {
	dir, err := os.MkdirTemp("", "diskvec-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	type Record struct {
		Val      uint64
		Checksum uint64
	}

	v, err := diskvec.Open[Record](dir)
	if err != nil {
		panic(err)
	}
	defer v.Close()

	idx, err := v.Push(Record{Val: 7, Checksum: 8})
	if err != nil {
		panic(err)
	}

	rec, ok, err := v.Get(idx)
	if err != nil {
		panic(err)
	}
	if !ok {
		panic("value should be present")
	}

	fmt.Println(rec.Val, rec.Checksum)
	// Output: 7 8
}
