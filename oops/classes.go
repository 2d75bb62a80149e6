package oops

// ClassDef is one entry in the class table. Fields keeps declaration order;
// instantiation binds arguments against it positionally by label.
type ClassDef struct {
	Name      string
	SuperName string
	Super     *ClassDef
	Fields    []Ident
	Methods   map[string]*Method
	Span      Span
}

// Method is a named block attached to a class.
type Method struct {
	Name   string
	Params []Param
	Body   []Stmt
	Span   Span
}

// lookupMethod resolves a selector against the class and then its superclass
// chain. The chain is finite: Object has no superclass and the link pass
// rejects cyclic chains before committing any link.
func (c *ClassDef) lookupMethod(name string) *Method {
	for class := c; class != nil; class = class.Super {
		if m, ok := class.Methods[name]; ok {
			return m
		}
	}
	return nil
}

// ClassTable holds every registered class by name.
type ClassTable struct {
	classes map[string]*ClassDef
}

// NewClassTable builds a table holding only the built-in Object root, which
// has no fields, no methods and no superclass.
func NewClassTable() *ClassTable {
	return &ClassTable{
		classes: map[string]*ClassDef{
			"Object": {
				Name:    "Object",
				Methods: map[string]*Method{},
			},
		},
	}
}

// Lookup returns the class registered under name, or nil.
func (t *ClassTable) Lookup(name string) *ClassDef {
	return t.classes[name]
}

// Names returns the registered class names, in no particular order.
func (t *ClassTable) Names() []string {
	names := make([]string, 0, len(t.classes))
	for name := range t.classes {
		names = append(names, name)
	}
	return names
}

// AddProgram folds a program's class and method definitions into the table.
// Registration happens in three passes so that declaration order does not
// matter: every class is collected first, then superclasses are linked, then
// methods are attached. A failing pass leaves no partial links behind for
// that pass, but classes collected by an earlier pass stay registered.
func (t *ClassTable) AddProgram(program []Stmt) error {
	if err := t.collectClasses(program); err != nil {
		return err
	}
	if err := t.linkSupers(program); err != nil {
		return err
	}
	return t.collectMethods(program)
}

func (t *ClassTable) collectClasses(program []Stmt) error {
	for _, stmt := range program {
		def, ok := stmt.(*DefineClassStmt)
		if !ok {
			continue
		}
		name := def.Name.Name
		if existing := t.classes[name]; existing != nil {
			return &ClassAlreadyDefinedError{
				Class:      name,
				FirstSpan:  existing.Span,
				SecondSpan: def.Span(),
			}
		}
		t.classes[name] = &ClassDef{
			Name:      name,
			SuperName: def.SuperName.Name,
			Fields:    def.Fields,
			Methods:   map[string]*Method{},
			Span:      def.Span(),
		}
	}
	return nil
}

// linkSupers resolves every superclass name before patching any pointer, so
// a missing or cyclic super leaves all links from this program unset.
func (t *ClassTable) linkSupers(program []Stmt) error {
	type link struct {
		class *ClassDef
		super *ClassDef
		span  Span
	}
	var links []link
	pending := map[*ClassDef]*ClassDef{}
	for _, stmt := range program {
		def, ok := stmt.(*DefineClassStmt)
		if !ok {
			continue
		}
		class := t.classes[def.Name.Name]
		super := t.classes[def.SuperName.Name]
		if super == nil {
			return &ClassNotDefinedError{
				Class: def.SuperName.Name,
				Span:  def.Span(),
			}
		}
		links = append(links, link{class: class, super: super, span: def.Span()})
		pending[class] = super
	}
	// Reject cycles before committing anything. A cycle can only form among
	// this program's links: classes from earlier programs are already
	// linked and cannot be redefined. The walk mixes pending links with
	// supers committed earlier.
	for _, l := range links {
		seen := map[*ClassDef]bool{l.class: true}
		for cur := l.super; cur != nil; {
			if seen[cur] {
				return &SuperclassCycleError{Class: l.class.Name, Span: l.span}
			}
			seen[cur] = true
			if next, ok := pending[cur]; ok {
				cur = next
			} else {
				cur = cur.Super
			}
		}
	}
	for _, l := range links {
		l.class.Super = l.super
	}
	return nil
}

func (t *ClassTable) collectMethods(program []Stmt) error {
	for _, stmt := range program {
		def, ok := stmt.(*DefineMethodStmt)
		if !ok {
			continue
		}
		class := t.classes[def.ClassName.Name]
		if class == nil {
			return &ClassNotDefinedError{
				Class: def.ClassName.Name,
				Span:  def.Span(),
			}
		}
		name := def.MethodName.Name
		if existing, ok := class.Methods[name]; ok {
			return &MethodAlreadyDefinedError{
				Class:      class.Name,
				Method:     name,
				FirstSpan:  existing.Span,
				SecondSpan: def.Span(),
			}
		}
		class.Methods[name] = &Method{
			Name:   name,
			Params: def.Block.Params,
			Body:   def.Block.Body,
			Span:   def.Span(),
		}
	}
	return nil
}
