// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/project-illium/sigil/crypto/sigil"
	"github.com/tidwall/sjson"
)

type input struct {
	label string
	data  []byte
	file  string
}

func readInputs(args, files []string, isHex bool) ([]input, error) {
	var inputs []input
	for _, arg := range args {
		data := []byte(arg)
		if isHex {
			b, err := hex.DecodeString(arg)
			if err != nil {
				return nil, fmt.Errorf("decoding %q: %w", arg, err)
			}
			data = b
		}
		inputs = append(inputs, input{label: arg, data: data})
	}
	for _, name := range files {
		inputs = append(inputs, input{label: name, file: name})
	}
	return inputs, nil
}

// sum digests an input. Files are streamed through the hash rather than
// read into memory.
func sum(p sigil.Params, in input) (sigil.Digest, error) {
	if in.file == "" {
		return p.Sum256(in.data), nil
	}
	var r io.Reader = os.Stdin
	if in.file != "-" {
		f, err := os.Open(in.file)
		if err != nil {
			return sigil.Digest{}, err
		}
		defer f.Close()
		r = f
	}
	if p.Certified() {
		return sigil.SumAny(r)
	}
	h := p.New()
	if _, err := io.Copy(h, r); err != nil {
		return sigil.Digest{}, err
	}
	var d sigil.Digest
	d.SetBytes(h.Sum(nil))
	return d, nil
}

type Digest struct {
	opts   *options
	File   []string `short:"f" long:"file" description:"Digest the contents of this file. Use - for stdin. May be repeated."`
	Hex    bool     `long:"hex" description:"Decode the arguments from hex before hashing"`
	Double bool     `long:"double" description:"Return digest(digest(x))"`
}

func (x *Digest) Execute(args []string) error {
	p, err := x.opts.params()
	if err != nil {
		return err
	}
	inputs, err := readInputs(args, x.File, x.Hex)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New("nothing to digest")
	}

	value := `{"digests":[]}`
	for _, in := range inputs {
		d, err := sum(p, in)
		if err != nil {
			return err
		}
		if x.Double {
			d = p.Sum256(d[:])
		}
		if !x.opts.JSON {
			fmt.Fprintf(stdout, "%s  %s\n", d, in.label)
			continue
		}
		value, err = sjson.Set(value, "digests.-1", map[string]string{
			"input":  in.label,
			"digest": d.String(),
		})
		if err != nil {
			return err
		}
	}
	if x.opts.JSON {
		fmt.Fprintln(stdout, value)
	}
	return nil
}

type Verify struct {
	opts   *options
	Digest string `long:"digest" description:"The expected digest in hex" required:"true"`
	File   string `short:"f" long:"file" description:"Verify the contents of this file instead of the argument"`
	Hex    bool   `long:"hex" description:"Decode the argument from hex before hashing"`
}

var errDigestMismatch = errors.New("digest mismatch")

func (x *Verify) Execute(args []string) error {
	p, err := x.opts.params()
	if err != nil {
		return err
	}
	expected, err := sigil.NewDigestFromString(x.Digest)
	if err != nil {
		return err
	}
	var files []string
	if x.File != "" {
		files = []string{x.File}
	}
	inputs, err := readInputs(args, files, x.Hex)
	if err != nil {
		return err
	}
	if len(inputs) != 1 {
		return errors.New("verify takes exactly one input")
	}

	d, err := sum(p, inputs[0])
	if err != nil {
		return err
	}
	if !d.Equal(expected) {
		return fmt.Errorf("%w: got %s", errDigestMismatch, d)
	}
	fmt.Fprintln(stdout, "ok")
	return nil
}

type Merkle struct {
	opts    *options
	Digests bool `long:"digests" description:"Treat the arguments as hex leaf digests rather than leaf data"`
}

func (x *Merkle) Execute(args []string) error {
	p, err := x.opts.params()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("at least one leaf is required")
	}

	leaves := make([]sigil.Digest, 0, len(args))
	for _, arg := range args {
		if x.Digests {
			d, err := sigil.NewDigestFromString(arg)
			if err != nil {
				return err
			}
			leaves = append(leaves, d)
			continue
		}
		leaves = append(leaves, p.Sum256([]byte(arg)))
	}

	root := p.MerkleRoot(leaves)

	if !x.opts.JSON {
		fmt.Fprintln(stdout, root)
		return nil
	}
	value, err := sjson.Set("{}", "root", root.String())
	if err != nil {
		return err
	}
	value, err = sjson.Set(value, "leaves", len(leaves))
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, value)
	return nil
}

type Commit struct {
	opts  *options
	Value string `long:"value" description:"The value to commit to" required:"true"`
	Nonce string `long:"nonce" description:"A hex nonce. A random 32 byte nonce is used if empty."`
}

func (x *Commit) Execute(args []string) error {
	p, err := x.opts.params()
	if err != nil {
		return err
	}
	var nonce []byte
	if x.Nonce != "" {
		nonce, err = hex.DecodeString(x.Nonce)
		if err != nil {
			return err
		}
	} else {
		nonce = make([]byte, 32)
		if _, err := rand.Read(nonce); err != nil {
			return err
		}
	}
	commitment := p.Commitment([]byte(x.Value), nonce)

	value, err := sjson.Set("{}", "commitment", commitment.String())
	if err != nil {
		return err
	}
	value, err = sjson.Set(value, "nonce", hex.EncodeToString(nonce))
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, value)
	return nil
}
