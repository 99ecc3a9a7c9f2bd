// Copyright (C) 2020  Nexedi SA and Contributors.
//                     Kirill Smelkov <kirr@nexedi.com>
//
// This program is free software: you can Use, Study, Modify and Redistribute
// it under the terms of the GNU General Public License version 3, or (at your
// option) any later version, as published by the Free Software Foundation.
//
// You can also Link and Combine this program with other software covered by
// the terms of any of the Free Software licenses or any of the Open Source
// Initiative approved licenses and Convey the resulting work. Corresponding
// source of such a combination shall include the source code for all other
// software used.
//
// This program is distributed WITHOUT ANY WARRANTY; without even the implied
// warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//
// See COPYING file for full licensing terms.
// See https://www.nexedi.com/licensing for rationale and options.


// Package xzlib compresses and decompresses saved checking cases in zlib
// format.
package xzlib

import (
	"bytes"
	"compress/zlib"

	"github.com/DataDog/czlib"
	"github.com/pkg/errors"
)

// Compress compresses data according to zlib encoding with default level and
// no dictionary.
func Compress(data []byte) []byte {
	var b bytes.Buffer
	w := zlib.NewWriter(&b)
	_, err := w.Write(data)
	if err != nil {
		panic(err) // bytes.Buffer.Write never returns error
	}
	err = w.Close()
	if err != nil {
		panic(err) // ----//----
	}
	return b.Bytes()
}

// Decompress decompresses zlib-encoded zdata.
func Decompress(zdata []byte) ([]byte, error) {
	data, err := czlib.Decompress(zdata)
	if err != nil {
		return nil, errors.Wrap(err, "zlib")
	}
	return data, nil
}
