package dmi

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const (
	beginMarker = "# BEGIN DMI"
	endMarker   = "# END DMI"
)

var nameEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Description renders the metadata text stored in the DMI's zTXt chunk.
func (ic *Icon) Description() (string, error) {
	version := ic.Version
	if version == "" {
		version = Version
	}

	b := &strings.Builder{}
	fmt.Fprintf(b, "%s\nversion = %s\n\twidth = %d\n\theight = %d\n", beginMarker, version, ic.Width, ic.Height)
	for _, s := range ic.States {
		if err := s.validate(); err != nil {
			return "", err
		}
		fmt.Fprintf(b, "state = \"%s\"\n\tdirs = %d\n\tframes = %d\n", nameEscaper.Replace(s.Name), s.Dirs, s.Frames)
		if s.Frames > 1 {
			delays := make([]string, len(s.Delays))
			for i, d := range s.Delays {
				delays[i] = strconv.FormatFloat(d, 'f', -1, 64)
			}
			fmt.Fprintf(b, "\tdelay = %s\n", strings.Join(delays, ","))
		}
		if s.Loop != 0 {
			fmt.Fprintf(b, "\tloop = %d\n", s.Loop)
		}
		if s.Rewind {
			b.WriteString("\trewind = 1\n")
		}
	}
	b.WriteString(endMarker + "\n")
	return b.String(), nil
}

// ParseDescription reads DMI metadata text. The returned states carry no
// images.
func ParseDescription(text string) (*Icon, error) {
	ic := &Icon{Width: 32, Height: 32}
	var cur *State
	begun := false

	sc := bufio.NewScanner(strings.NewReader(text))
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimRight(sc.Text(), "\r")
		switch strings.TrimSpace(line) {
		case "":
			continue
		case beginMarker:
			begun = true
			continue
		case endMarker:
			if !begun {
				return nil, errors.Wrap(ErrMalformed, "end marker before begin marker")
			}
			return ic, nil
		}
		if !begun {
			return nil, errors.Wrapf(ErrMalformed, "line %d: content before %q", lineNo, beginMarker)
		}

		eq := strings.Index(line, "=")
		if eq < 0 {
			return nil, errors.Wrapf(ErrMalformed, "line %d: no '=' in %q", lineNo, line)
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])

		if err := ic.set(&cur, key, val); err != nil {
			return nil, errors.Wrapf(ErrMalformed, "line %d: %v", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading dmi description")
	}
	return nil, errors.Wrapf(ErrMalformed, "missing %q", endMarker)
}

func (ic *Icon) set(cur **State, key, val string) error {
	var err error
	switch key {
	case "version":
		ic.Version = val
	case "state":
		name, uerr := strconv.Unquote(val)
		if uerr != nil {
			name = strings.Trim(val, `"`)
		}
		*cur = &State{Name: name, Dirs: 1, Frames: 1}
		ic.States = append(ic.States, *cur)
	case "width", "height":
		if *cur != nil {
			return fmt.Errorf("%s inside state %q", key, (*cur).Name)
		}
		var n int
		if n, err = strconv.Atoi(val); err != nil {
			return err
		}
		if key == "width" {
			ic.Width = n
		} else {
			ic.Height = n
		}
	default:
		if *cur == nil {
			glog.V(1).Infof("dmi: ignoring header key %q", key)
			return nil
		}
		return (*cur).set(key, val)
	}
	return err
}

func (s *State) set(key, val string) error {
	var err error
	switch key {
	case "dirs":
		s.Dirs, err = strconv.Atoi(val)
	case "frames":
		s.Frames, err = strconv.Atoi(val)
	case "loop":
		s.Loop, err = strconv.Atoi(val)
	case "rewind":
		s.Rewind = val == "1"
	case "delay":
		parts := strings.Split(val, ",")
		s.Delays = make([]float64, len(parts))
		for i, p := range parts {
			if s.Delays[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64); err != nil {
				return err
			}
		}
	default:
		glog.V(1).Infof("dmi: ignoring key %q of state %q", key, s.Name)
	}
	return err
}
