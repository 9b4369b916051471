package mks

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	opViewSandbox = "viewsandbox"
	opMemberInfo  = "memberinfo"
	memberModel   = "si.Member"
)

// timestampLayouts lists the date formats si emits, most specific first.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"Jan 2, 2006 3:04:05 PM MST",
	"Jan 2, 2006 3:04:05 PM",
}

// ParseSandboxChanges parses `si viewsandbox --xmlapi` output into modifications.
// Empty output means there are no changes and yields an empty, non-nil slice.
func ParseSandboxChanges(r io.Reader) ([]Modification, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Operation: opViewSandbox, Err: err}
	}
	mods := make([]Modification, 0)
	if len(bytes.TrimSpace(data)) == 0 {
		return mods, nil
	}

	resp, err := decodeResponse(data)
	if err != nil {
		return nil, &ParseError{Operation: opViewSandbox, Err: err}
	}
	if ex := resp.exception(); ex != nil {
		return nil, &InvocationError{Command: opViewSandbox, Err: exceptionError(ex)}
	}

	for _, item := range resp.WorkItems {
		if item.Exception != nil {
			return nil, &InvocationError{Command: opViewSandbox, Err: exceptionError(item.Exception)}
		}
		if item.ModelType != "" && item.ModelType != memberModel {
			continue
		}
		name := fieldText(item.Fields, "name", "membername")
		if name == "" {
			name = item.ID
		}
		folder, file := splitMemberPath(name)
		if file == "" {
			return nil, &ParseError{Operation: opViewSandbox, Err: fmt.Errorf("work item %q has no member name", item.ID)}
		}

		mod := Modification{
			Type:       deltaType(item.Fields),
			FileName:   file,
			FolderName: folder,
		}
		if ts := fieldText(item.Fields, "workingtimestamp", "timestamp", "date"); ts != "" {
			t, err := parseTimestamp(ts)
			if err != nil {
				return nil, &ParseError{Operation: opViewSandbox, Member: mod.Path(), Err: err}
			}
			mod.ModifiedTime = t
		}
		mods = append(mods, mod)
	}
	return mods, nil
}

// ParseMemberInfo parses `si memberinfo --xmlapi` output for one member
// and writes its revision details into mod.
func ParseMemberInfo(r io.Reader, mod *Modification) error {
	fail := func(err error) error {
		return &ParseError{Operation: opMemberInfo, Member: mod.Path(), Err: err}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fail(err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fail(errors.New("empty output"))
	}

	resp, err := decodeResponse(data)
	if err != nil {
		return fail(err)
	}
	if ex := resp.exception(); ex != nil {
		return &InvocationError{Command: opMemberInfo + " " + mod.Path(), Err: exceptionError(ex)}
	}
	if len(resp.WorkItems) != 1 {
		return fail(fmt.Errorf("expected 1 work item, got %d", len(resp.WorkItems)))
	}
	item := resp.WorkItems[0]
	if item.Exception != nil {
		return &InvocationError{Command: opMemberInfo + " " + mod.Path(), Err: exceptionError(item.Exception)}
	}

	revision := fieldText(item.Fields, "revision", "memberrev")
	if revision == "" {
		return fail(errors.New("missing revision"))
	}
	date := fieldText(item.Fields, "date", "revisiondate")
	if date == "" {
		return fail(errors.New("missing date"))
	}
	modified, err := parseTimestamp(date)
	if err != nil {
		return fail(err)
	}

	mod.Version = revision
	mod.ModifiedTime = modified
	mod.UserName = fieldText(item.Fields, "author", "user")
	mod.Comment = fieldText(item.Fields, "description", "revdescription")
	return nil
}

// deltaType maps the working file delta si reports to a modification type.
func deltaType(fields []xmlField) ModificationType {
	var kind string
	if f := findField(fields, "wfdelta"); f != nil && f.Item != nil {
		kind = fieldText(f.Item.Fields, "type")
		if kind == "" {
			kind = f.Item.ID
		}
	}
	if kind == "" {
		kind = fieldText(fields, "deltatype", "type")
	}

	switch strings.ToLower(kind) {
	case "added", "new", "add":
		return ModificationAdded
	case "dropped", "deleted", "missing", "drop":
		return ModificationDeleted
	default:
		return ModificationModified
	}
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func exceptionError(ex *xmlException) error {
	msg := strings.TrimSpace(ex.Message)
	if msg == "" {
		msg = "unknown error"
	}
	if ex.Class != "" {
		return fmt.Errorf("%s: %s", ex.Class, msg)
	}
	return errors.New(msg)
}
