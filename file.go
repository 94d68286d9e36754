// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"golang.org/x/text/encoding"

	"github.com/gocadkit/dxf/log"
)

// Options configures how a file is opened and parsed.
type Options struct {
	// CodePage overrides the byte-to-character encoding used to decode
	// pre-R2007 string pairs. Defaults to Windows-1252 when nil.
	CodePage encoding.Encoding

	// A custom logger; once the read finishes, each anomaly collected on
	// Drawing.Anomalies is also logged at Warn level.
	Logger log.Logger
}

func (o *Options) helper() *log.Helper {
	if o == nil || o.Logger == nil {
		return log.NewHelper(log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(log.LevelWarn)))
	}
	return log.NewHelper(o.Logger)
}

// Open memory-maps name and parses it as a drawing. The mapping is
// released before Open returns; the drawing itself holds no reference to
// the file afterward.
func Open(name string, opts *Options) (*Drawing, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer data.Unmap()

	return parseBytes(data, opts)
}

// OpenBytes parses a drawing already resident in memory.
func OpenBytes(data []byte, opts *Options) (*Drawing, error) {
	return parseBytes(data, opts)
}

// SaveFile creates (or truncates) name and writes d to it in its ASCII
// wire form, normalizing d first (spec §4.6, §9 "Normalize").
func SaveFile(name string, d *Drawing) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return Save(f, d)
}

func parseBytes(data []byte, opts *Options) (*Drawing, error) {
	helper := opts.helper()

	var codePage encoding.Encoding
	if opts != nil {
		codePage = opts.CodePage
	}
	d, err := LoadWithCodePage(bytes.NewReader(data), codePage)
	if err != nil {
		helper.Errorf("parse failed: %v", err)
		return nil, err
	}
	for _, a := range d.Anomalies {
		helper.Warnf("%s", a)
	}
	return d, nil
}
