// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"encoding/json"
	"os"
)

// Config mirrors the CLI flags so a JSON file passed via -c can override
// whatever the shell invocation set, the same two-layer precedence the
// teacher's server/config.go and client's "-c" flag apply.
type Config struct {
	ECC        string `json:"ecc"`        // "rs" or "hamming"
	N          int    `json:"n"`          // RS codeword length
	K          int    `json:"k"`          // RS info length
	Degree     int    `json:"degree"`     // Hamming degree m
	Capacity   int    `json:"capacity"`   // dictionary capacity
	Workers    int    `json:"workers"`    // ECC fan-out width
	Align      string `json:"align"`      // path to a precoding matrix file (RS only)
	Log        string `json:"log"`        // log file, default stderr
	StatLog    string `json:"statlog"`    // periodic stats CSV dump path
	StatPeriod int    `json:"statperiod"` // seconds between stats dumps
	Quiet      bool   `json:"quiet"`      // suppress per-block progress lines
}

func parseJSONConfig(config *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(config)
}
