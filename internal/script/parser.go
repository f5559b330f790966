/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"formbuilder/internal/input"
	"formbuilder/internal/vector"
)

var (
	reTitle  = regexp.MustCompile(`^#+\s*(.*)$`)
	reCanvas = regexp.MustCompile(`^(?i)(\d+(?:\.\d+)?)x(\d+(?:\.\d+)?)$`)
)

var keyNames = map[string]string{
	"delete":    string(input.KeyDelete),
	"del":       string(input.KeyDelete),
	"backspace": string(input.KeyBackspace),
	"escape":    string(input.KeyEscape),
	"esc":       string(input.KeyEscape),
}

// token is a whitespace separated word and its 1-based column.
type token struct {
	text string
	col  int
}

func tokenize(line string) []token {
	var out []token
	start := -1
	for i, r := range line {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, token{line[start:i], start + 1})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, token{line[start:], start + 1})
	}
	return out
}

// Parse parses a gesture script.
// Supported syntax, one command per line:
//   - "# title" names the script; later headings are ignored.
//   - "; text" is a note and has no effect on replay.
//   - canvas WxH, category <name>, drop [<category>/]<index> [at X Y]
//   - click X Y, select <id>, clear, move <id> X Y, resize <id> X Y W H
//   - set <name> [value...], reorder <from> <to>, key <name>, add-page, page <i>
//
// Keywords are case-insensitive. Parsing continues past bad lines so every
// problem is reported at once.
func Parse(src string) (Script, []Error) {
	var s Script
	var errs []Error
	scanner := bufio.NewScanner(strings.NewReader(src))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		trim := strings.TrimSpace(line)
		if trim == "" {
			continue
		}
		if m := reTitle.FindStringSubmatch(trim); m != nil {
			if s.Title == "" {
				s.Title = strings.TrimSpace(m[1])
			}
			continue
		}
		if strings.HasPrefix(trim, ";") {
			s.Steps = append(s.Steps, Step{Op: OpNote, Text: strings.TrimSpace(strings.TrimPrefix(trim, ";")), LineNo: lineNo})
			continue
		}
		st, err := parseCommand(line, lineNo)
		if err != nil {
			errs = append(errs, *err)
			continue
		}
		s.Steps = append(s.Steps, st)
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, Error{Line: lineNo, Column: 1, Message: err.Error()})
	}
	return s, errs
}

func parseCommand(line string, lineNo int) (Step, *Error) {
	toks := tokenize(line)
	cmd, args := toks[0], toks[1:]
	fail := func(col int, format string, a ...any) (Step, *Error) {
		return Step{}, &Error{Line: lineNo, Column: col, Message: fmt.Sprintf(format, a...)}
	}
	// end is the column just past the last token, used for missing arguments
	last := toks[len(toks)-1]
	end := last.col + len(last.text)
	want := func(n int) *Error {
		if len(args) < n {
			_, err := fail(end, "%s: expected %d argument(s), got %d", cmd.text, n, len(args))
			return err
		}
		if len(args) > n {
			_, err := fail(args[n].col, "%s: unexpected argument %q", cmd.text, args[n].text)
			return err
		}
		return nil
	}
	num := func(t token) (float64, *Error) {
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil || !vector.Finite(v) {
			_, e := fail(t.col, "%s: invalid number %q", cmd.text, t.text)
			return 0, e
		}
		return v, nil
	}
	index := func(t token) (int, *Error) {
		v, err := strconv.Atoi(t.text)
		if err != nil || v < 0 {
			_, e := fail(t.col, "%s: invalid index %q", cmd.text, t.text)
			return 0, e
		}
		return v, nil
	}

	st := Step{LineNo: lineNo}
	var err *Error
	switch strings.ToLower(cmd.text) {
	case "canvas":
		if err = want(1); err != nil {
			return Step{}, err
		}
		m := reCanvas.FindStringSubmatch(args[0].text)
		if m == nil {
			return fail(args[0].col, "canvas: expected WxH, got %q", args[0].text)
		}
		st.Op = OpCanvas
		st.W, _ = strconv.ParseFloat(m[1], 64)
		st.H, _ = strconv.ParseFloat(m[2], 64)
	case "category":
		if len(args) == 0 {
			return fail(end, "category: missing name")
		}
		st.Op = OpCategory
		st.Category = strings.TrimSpace(line[args[0].col-1:])
	case "drop":
		return parseDrop(line, lineNo, cmd, args, end)
	case "click":
		if err = want(2); err != nil {
			return Step{}, err
		}
		st.Op = OpClick
		if st.X, err = num(args[0]); err != nil {
			return Step{}, err
		}
		if st.Y, err = num(args[1]); err != nil {
			return Step{}, err
		}
	case "select":
		if err = want(1); err != nil {
			return Step{}, err
		}
		st.Op, st.ID = OpSelect, args[0].text
	case "clear":
		if err = want(0); err != nil {
			return Step{}, err
		}
		st.Op = OpClear
	case "move":
		if err = want(3); err != nil {
			return Step{}, err
		}
		st.Op, st.ID = OpMove, args[0].text
		if st.X, err = num(args[1]); err != nil {
			return Step{}, err
		}
		if st.Y, err = num(args[2]); err != nil {
			return Step{}, err
		}
	case "resize":
		if err = want(5); err != nil {
			return Step{}, err
		}
		st.Op, st.ID = OpResize, args[0].text
		dst := []*float64{&st.X, &st.Y, &st.W, &st.H}
		for i, p := range dst {
			if *p, err = num(args[i+1]); err != nil {
				return Step{}, err
			}
		}
	case "set":
		if len(args) == 0 {
			return fail(end, "set: missing property name")
		}
		st.Op, st.Name = OpSet, args[0].text
		if len(args) > 1 {
			st.Value = strings.TrimSpace(line[args[1].col-1:])
		}
	case "reorder":
		if err = want(2); err != nil {
			return Step{}, err
		}
		st.Op = OpReorder
		if st.Index, err = index(args[0]); err != nil {
			return Step{}, err
		}
		if st.To, err = index(args[1]); err != nil {
			return Step{}, err
		}
	case "key":
		if err = want(1); err != nil {
			return Step{}, err
		}
		k, ok := keyNames[strings.ToLower(args[0].text)]
		if !ok {
			return fail(args[0].col, "key: unknown key %q", args[0].text)
		}
		st.Op, st.Key = OpKey, k
	case "add-page":
		if err = want(0); err != nil {
			return Step{}, err
		}
		st.Op = OpAddPage
	case "page":
		if err = want(1); err != nil {
			return Step{}, err
		}
		st.Op = OpPage
		if st.Index, err = index(args[0]); err != nil {
			return Step{}, err
		}
	default:
		return fail(cmd.col, "unknown command %q", cmd.text)
	}
	return st, nil
}

// parseDrop handles "drop [<category>/]<index> [at X Y]". Category names may
// contain spaces, so everything before the last "/" of the target is the name.
func parseDrop(line string, lineNo int, cmd token, args []token, end int) (Step, *Error) {
	fail := func(col int, format string, a ...any) (Step, *Error) {
		return Step{}, &Error{Line: lineNo, Column: col, Message: fmt.Sprintf(format, a...)}
	}
	if len(args) == 0 {
		return fail(end, "drop: missing template index")
	}
	st := Step{Op: OpDrop, LineNo: lineNo}
	target := args
	for i, t := range args {
		if strings.EqualFold(t.text, "at") {
			target = args[:i]
			pt := args[i+1:]
			if len(pt) != 2 {
				return fail(t.col, "drop: expected \"at X Y\"")
			}
			for j, p := range []*float64{&st.X, &st.Y} {
				v, err := strconv.ParseFloat(pt[j].text, 64)
				if err != nil || !vector.Finite(v) {
					return fail(pt[j].col, "drop: invalid number %q", pt[j].text)
				}
				*p = v
			}
			st.HasPoint = true
			break
		}
	}
	if len(target) == 0 {
		return fail(cmd.col, "drop: missing template index")
	}
	first, lastTok := target[0], target[len(target)-1]
	spec := line[first.col-1 : lastTok.col-1+len(lastTok.text)]
	idxText, idxCol := spec, first.col
	if slash := strings.LastIndex(spec, "/"); slash >= 0 {
		st.Category = strings.TrimSpace(spec[:slash])
		idxText = strings.TrimSpace(spec[slash+1:])
		idxCol = first.col + slash + 1
		if st.Category == "" {
			return fail(first.col, "drop: empty category name")
		}
	}
	v, err := strconv.Atoi(idxText)
	if err != nil || v < 0 {
		return fail(idxCol, "drop: invalid template index %q", idxText)
	}
	st.Index = v
	return st, nil
}
