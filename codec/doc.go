// Package codec implements the primitive, container, and sum-type
// encodings of the wire format: the leaf dispatch that record and table
// codecs build on.
//
// Every Encode/Decode pair here writes or consumes exactly one prefix byte
// followed by that prefix's payload, per the table in wire.Prefix; the raw
// framing fields in framing.go are the exception and carry no prefix. Integer
// encoders always choose the smallest prefix that losslessly represents
// the value; decoders accept any prefix in the declared type's match set.
package codec
