// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package radix is a compressed prefix tree that recognizes HTTP path
// templates and reports where their parameters lie in the request path.
package radix

// stackParamsSize is the number of parameter spans collected on the stack
// before a lookup has to grow onto the heap.
const stackParamsSize = 16

const (
	static nodeType = iota
	param
	catchAll
)

const noLeaf = -1

// Asterisk is the request target of a server-wide "OPTIONS *" request.
const Asterisk = "*"
