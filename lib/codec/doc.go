// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding used for seqlab state
// files (launch records). Encoding is deterministic: the same logical
// record always serializes to identical bytes, so records can be
// compared and hashed byte-for-byte.
package codec
