package adapters

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/jacoelho/xsd/pkg/xmlstream"
	"github.com/rs/zerolog/log"

	"vmodl-helper/internal/ports"
	"vmodl-helper/internal/types"
)

// WSDLFileAdapter reads the named complex types of a WSDL or XSD document
// and of every local document it imports or includes.
type WSDLFileAdapter struct{}

func NewWSDLFileAdapter() WSDLFileAdapter {
	return WSDLFileAdapter{}
}

// ReadSchema returns complex types in document order.  Included documents
// are expanded at the point where they are referenced and each file is
// read at most once.
func (a WSDLFileAdapter) ReadSchema(path string) ([]types.SchemaType, error) {
	reader := &schemaReader{
		visited: map[string]struct{}{},
		globals: map[string]types.TypeRef{},
	}
	if err := reader.readFile(path, ""); err != nil {
		return nil, err
	}
	if err := reader.resolveRefs(); err != nil {
		return nil, err
	}
	log.Debug().
		Str("path", path).
		Int("documents", len(reader.visited)).
		Int("types", len(reader.types)).
		Msg("schema read")
	return reader.types, nil
}

type schemaReader struct {
	visited map[string]struct{}
	types   []types.SchemaType

	// globals holds top-level element declarations keyed by "{ns}local";
	// refs are element references waiting for them.
	globals map[string]types.TypeRef
	refs    []elementRef
}

type elementRef struct {
	typeIndex    int
	elementIndex int
	key          string
	token        string
}

func (r *schemaReader) readFile(path string, inheritedNamespace string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid schema document path: " + path).
			WithCause(err)
	}
	if _, seen := r.visited[abs]; seen {
		return nil
	}
	r.visited[abs] = struct{}{}

	content, err := os.ReadFile(abs)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read schema document: " + path).
			WithCause(err)
	}
	doc := &schemaDocument{
		reader:             r,
		dir:                filepath.Dir(abs),
		inheritedNamespace: inheritedNamespace,
	}
	if err := doc.decode(content); err != nil {
		var builder *errbuilder.ErrBuilder
		if errors.As(err, &builder) {
			return err
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse schema document: " + path).
			WithCause(err)
	}
	return nil
}

// resolveRefs gives every ref= element the type of the global element it
// names.  Runs once all documents are read, so declaration order across
// files does not matter.
func (r *schemaReader) resolveRefs() error {
	for _, ref := range r.refs {
		typeRef, ok := r.globals[ref.key]
		if !ok {
			schemaType := r.types[ref.typeIndex]
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("element reference %s in %s names no global element",
					ref.token, schemaType.Name))
		}
		r.types[ref.typeIndex].Elements[ref.elementIndex].Type = typeRef
	}
	r.refs = nil
	return nil
}

// schemaDocument is the decoding state of a single file.
type schemaDocument struct {
	reader             *schemaReader
	dir                string
	inheritedNamespace string

	stream *xmlstream.Reader

	// path holds the local names of the open elements.
	path    []string
	schemas []schemaScope

	current      *types.SchemaType
	currentIndex int
	currentDepth int
}

type schemaScope struct {
	depth     int
	namespace string
}

func (d *schemaDocument) decode(content []byte) error {
	stream, err := xmlstream.NewReader(bytes.NewReader(content))
	if err != nil {
		return err
	}
	d.stream = stream
	for {
		event, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch event.Kind {
		case xmlstream.EventStartElement:
			if err := d.start(event); err != nil {
				return err
			}
		case xmlstream.EventEndElement:
			d.end()
		}
	}
}

func (d *schemaDocument) start(event xmlstream.Event) error {
	local := string(event.Name.Local)
	parent := d.parentLocal()

	if local == "complexType" {
		name := attrValue(event, "name")
		if d.current != nil || name == "" {
			// Anonymous and nested complex types are not registry types.
			return d.stream.SkipSubtree()
		}
	}
	d.path = append(d.path, local)
	depth := len(d.path)

	switch local {
	case "schema":
		namespace := attrValue(event, "targetNamespace")
		if namespace == "" {
			namespace = d.targetNamespace()
		}
		d.schemas = append(d.schemas, schemaScope{depth: depth, namespace: namespace})
	case "import", "include":
		return d.follow(event)
	case "complexType":
		d.reader.types = append(d.reader.types, types.SchemaType{
			Name:      attrValue(event, "name"),
			Namespace: d.targetNamespace(),
		})
		d.currentIndex = len(d.reader.types) - 1
		d.current = &d.reader.types[d.currentIndex]
		d.currentDepth = depth
	case "extension", "restriction":
		if d.current == nil || parent != "complexContent" {
			return nil
		}
		base := d.qname(attrValue(event, "base"))
		if base.Token != "" && base.Namespace != types.XSDNamespace {
			d.current.Base = &base
		}
	case "element":
		if d.current == nil {
			if parent == "schema" {
				d.global(event)
			}
			return nil
		}
		return d.element(event)
	}
	return nil
}

func (d *schemaDocument) end() {
	depth := len(d.path)
	if depth == 0 {
		return
	}
	if d.current != nil && depth == d.currentDepth {
		d.current = nil
	}
	if n := len(d.schemas); n > 0 && d.schemas[n-1].depth == depth {
		d.schemas = d.schemas[:n-1]
	}
	d.path = d.path[:depth-1]
}

// follow reads a local document named by wsdl:import@location or
// xsd:import/xsd:include@schemaLocation, relative to this document.
func (d *schemaDocument) follow(event xmlstream.Event) error {
	location := attrValue(event, "schemaLocation")
	if location == "" {
		location = attrValue(event, "location")
	}
	if location == "" {
		return nil
	}
	if strings.Contains(location, "://") {
		log.Debug().Str("location", location).Msg("remote schema document skipped")
		return nil
	}
	path := location
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.dir, location)
	}
	inherited := ""
	if string(event.Name.Local) == "include" {
		inherited = d.targetNamespace()
	}
	// Types read from the included document are appended to the shared
	// slice, so the pointer to the open type must be refreshed afterwards.
	err := d.reader.readFile(path, inherited)
	if d.current != nil {
		d.current = &d.reader.types[d.currentIndex]
	}
	return err
}

// global records a top-level element declaration for ref= lookups.  The
// first declaration of a name wins.
func (d *schemaDocument) global(event xmlstream.Event) {
	name := attrValue(event, "name")
	if name == "" {
		return
	}
	key := elementKey(d.targetNamespace(), name)
	if _, dup := d.reader.globals[key]; dup {
		return
	}
	typeRef := anyTypeRef
	if token := attrValue(event, "type"); token != "" {
		typeRef = d.qname(token)
	}
	d.reader.globals[key] = typeRef
}

func (d *schemaDocument) element(event xmlstream.Event) error {
	name := attrValue(event, "name")
	ref := attrValue(event, "ref")
	if name == "" && ref != "" {
		refName := d.qname(ref)
		name = localPart(ref)
		d.reader.refs = append(d.reader.refs, elementRef{
			typeIndex:    d.currentIndex,
			elementIndex: len(d.current.Elements),
			key:          elementKey(refName.Namespace, name),
			token:        ref,
		})
	}
	if name == "" {
		return nil
	}
	typeRef := anyTypeRef
	if token := attrValue(event, "type"); token != "" && ref == "" {
		typeRef = d.qname(token)
	}
	minOccurs, err := parseOccurs(attrValue(event, "minOccurs"))
	if err != nil {
		return occursError(d.current.Name, name, err)
	}
	maxOccurs, err := parseOccurs(attrValue(event, "maxOccurs"))
	if err != nil {
		return occursError(d.current.Name, name, err)
	}
	d.current.Elements = append(d.current.Elements, types.SchemaElement{
		Name:      name,
		Type:      typeRef,
		MinOccurs: minOccurs,
		MaxOccurs: maxOccurs,
	})
	return nil
}

var anyTypeRef = types.TypeRef{Token: "xsd:anyType", Namespace: types.XSDNamespace}

// qname resolves the prefix of a QName-valued attribute against the
// namespace declarations of the current element.  Unprefixed names use
// the default namespace.
func (d *schemaDocument) qname(value string) types.TypeRef {
	value = strings.TrimSpace(value)
	if value == "" {
		return types.TypeRef{}
	}
	prefix, _, found := strings.Cut(value, ":")
	if !found {
		prefix = ""
	}
	if namespace, ok := d.stream.LookupNamespace(prefix); ok && namespace != "" {
		return types.TypeRef{Token: value, Namespace: namespace}
	}
	return types.TypeRef{Token: value}
}

func (d *schemaDocument) targetNamespace() string {
	if n := len(d.schemas); n > 0 {
		return d.schemas[n-1].namespace
	}
	return d.inheritedNamespace
}

func (d *schemaDocument) parentLocal() string {
	if len(d.path) == 0 {
		return ""
	}
	return d.path[len(d.path)-1]
}

func attrValue(event xmlstream.Event, local string) string {
	for _, attr := range event.Attrs {
		if string(attr.Name.Namespace) == "" && string(attr.Name.Local) == local {
			return strings.TrimSpace(string(attr.Value))
		}
	}
	return ""
}

func elementKey(namespace string, local string) string {
	return "{" + namespace + "}" + local
}

func localPart(token string) string {
	if _, local, found := strings.Cut(token, ":"); found {
		return local
	}
	return token
}

// parseOccurs reads minOccurs/maxOccurs; absent means 1.
func parseOccurs(value string) (int, error) {
	switch value {
	case "":
		return 1, nil
	case "unbounded":
		return types.Unbounded, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if parsed < 0 {
		return 0, fmt.Errorf("negative occurrence %d", parsed)
	}
	return parsed, nil
}

func occursError(typeName string, elementName string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid occurrence bound on %s.%s", typeName, elementName)).
		WithCause(err)
}

var _ ports.SchemaReaderPort = WSDLFileAdapter{}
