package app

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/jmoiron/rjview/rjson"
)

// documentExts are the file extensions picked up when scanning a library.
var documentExts = map[string]bool{
	".rjson": true,
	".json":  true,
}

// Library is the set of documents found under a root directory, split into
// those that decoded and those that did not.
type Library struct {
	// root is the directory that was scanned.
	root string

	Docs     []*Document
	Failures []*Failure

	// byName maps a document name to its entry in Docs or Failures.
	byName map[string]entry
}

type entry struct {
	doc  *Document
	fail *Failure
}

// Document is a successfully decoded file.
type Document struct {
	// Name is the slash separated path relative to the library root, used
	// in URLs.
	Name   string
	Path   string
	Source string
	Value  rjson.Value
	// Keys holds the top level keys when Value is an object.
	Keys []string
}

// Kind describes the top level value.
func (d *Document) Kind() string { return kindOf(d.Value) }

// Failure is a file that could not be read or decoded.
type Failure struct {
	Name   string
	Path   string
	Source string
	Err    string
	// Kind and Loc are set when the failure is a syntax error.
	Kind string
	Loc  string

	err error
}

// NewLibrary scans root recursively and decodes every document in it with
// cfg. Documents that fail to decode are recorded, not returned as errors;
// only a failure to walk root itself is an error.
func NewLibrary(root string, cfg rjson.Config, logger log.Logger) (*Library, error) {
	lib := &Library{root: root, byName: make(map[string]entry)}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			level.Warn(logger).Log("msg", "skipping unreadable path", "path", path, "err", err)
			return nil
		}
		if d.IsDir() || !documentExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		lib.load(path, cfg, logger)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scan library %s", root)
	}

	sort.Slice(lib.Docs, func(i, j int) bool { return lib.Docs[i].Name < lib.Docs[j].Name })
	sort.Slice(lib.Failures, func(i, j int) bool { return lib.Failures[i].Name < lib.Failures[j].Name })
	level.Debug(logger).Log("msg", "library loaded", "root", root, "parsed", len(lib.Docs), "failed", len(lib.Failures))
	return lib, nil
}

func (l *Library) load(path string, cfg rjson.Config, logger log.Logger) {
	name := l.nameOf(path)
	b, err := os.ReadFile(path)
	if err != nil {
		l.fail(&Failure{Name: name, Path: path}, errors.Wrap(err, "read document"), logger)
		return
	}
	src := string(b)

	v, err := rjson.DecodeWithConfig(src, cfg)
	if err != nil {
		l.fail(&Failure{Name: name, Path: path, Source: src}, err, logger)
		return
	}

	doc := &Document{Name: name, Path: path, Source: src, Value: v}
	if m, ok := v.(*rjson.Object); ok {
		doc.Keys = rjson.Keys(m)
	}
	l.Docs = append(l.Docs, doc)
	l.byName[name] = entry{doc: doc}
}

func (l *Library) fail(f *Failure, err error, logger log.Logger) {
	f.err = err
	f.Err = err.Error()
	var se *rjson.SyntaxError
	if errors.As(err, &se) {
		f.Kind = se.Kind.String()
		f.Loc = se.Loc.String()
	}
	level.Warn(logger).Log("msg", "document failed to decode", "path", f.Path, "err", err)
	l.Failures = append(l.Failures, f)
	l.byName[f.Name] = entry{fail: f}
}

func (l *Library) nameOf(path string) string {
	rel, err := filepath.Rel(l.root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

// Lookup returns the document or failure recorded under name. Both are nil
// if name is unknown.
func (l *Library) Lookup(name string) (*Document, *Failure) {
	e := l.byName[name]
	return e.doc, e.fail
}

// Err returns every failure combined into one error, or nil if all
// documents decoded.
func (l *Library) Err() error {
	var result *multierror.Error
	for _, f := range l.Failures {
		result = multierror.Append(result, errors.Wrap(f.err, f.Name))
	}
	return result.ErrorOrNil()
}
