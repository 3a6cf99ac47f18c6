/* Copyright 2018-2026 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


package tools

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v2"
)

// MaxInlineDepth limits how deeply inlined files can inline other
// files.
var MaxInlineDepth = 8

var inlinePattern = regexp.MustCompile(`%inline *\("([^"]*)"\)`)

// Inline replaces '%inline("NAME")' with f(NAME).  Replacements are
// themselves inlined, up to MaxInlineDepth.
func Inline(bs []byte, f func(string) ([]byte, error)) ([]byte, error) {
	return inline(bs, f, 0)
}

func inline(bs []byte, f func(string) ([]byte, error), depth int) ([]byte, error) {
	if MaxInlineDepth < depth {
		return nil, fmt.Errorf("inlines nested more than %d deep", MaxInlineDepth)
	}
	var (
		acc  = make([]byte, 0, len(bs))
		last = 0
	)
	for _, loc := range inlinePattern.FindAllSubmatchIndex(bs, -1) {
		acc = append(acc, bs[last:loc[0]]...)
		last = loc[1]
		name := string(bs[loc[2]:loc[3]])
		replacement, err := f(name)
		if err != nil {
			return nil, fmt.Errorf("inlining %s: %w", name, err)
		}
		if replacement, err = inline(replacement, f, depth+1); err != nil {
			return nil, err
		}
		acc = append(acc, replacement...)
	}
	return append(acc, bs[last:]...), nil
}

// ReadFileWithInlines is a replacement for ioutil.ReadFile that adds
// automation Inline()ing based on the directory obtained from the
// filename.
//
// '%inline("NAME")' is replaced with ReadFile(NAME).
func ReadFileWithInlines(filename string) ([]byte, error) {
	bs, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(filename)
	return Inline(bs, func(name string) ([]byte, error) {
		return ioutil.ReadFile(dir + string(os.PathSeparator) + name)
	})
}

// ReadScript reads a workspace script.
//
// A file ending in .yaml or .yml holds a map with "code" and
// optionally "requires".  Anything else is plain ECMAScript.  Either
// way, inlines are expanded first.
func ReadScript(filename string) (interface{}, error) {
	bs, err := ReadFileWithInlines(filename)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		var src interface{}
		if err = yaml.Unmarshal(bs, &src); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		return src, nil
	default:
		return string(bs), nil
	}
}
