// Package bcdlut builds the display lookup tables declared in a
// configuration file.
//
// The same configuration drives the ROM contents and the address decode
// logic, so the two can not drift apart:
//
//	f, err := config.LoadFile("tables.yaml")
//	...
//	tables, err := bcdlut.BuildAll(f)
//	...
//	err = table.NewVerilogEncoder(w, "freq").Encode(tables[0])
package bcdlut

import (
	"github.com/calebcase/bcdlut/config"
	"github.com/calebcase/bcdlut/table"
)

// Build generates and verifies the table declared by c.
func Build(c *config.Table) (t *table.Table, err error) {
	d, err := c.Domain()
	if err != nil {
		return nil, err
	}

	opts, err := c.Options()
	if err != nil {
		return nil, err
	}

	return table.Generate(d, opts)
}

// BuildAll builds every table in f, stopping at the first failure.
func BuildAll(f *config.File) (tables []*table.Table, err error) {
	for i := range f.Tables {
		t, err := Build(&f.Tables[i])
		if err != nil {
			return nil, err
		}

		tables = append(tables, t)
	}

	return tables, nil
}
