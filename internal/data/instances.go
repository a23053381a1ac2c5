package data

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/sjwhitworth/golearn/base"
)

// ReadCSV loads a csv file into a table. The last column is the class attribute.
func ReadCSV(file string, hasHeaders bool) (*Table, error) {
	instances, err := base.ParseCSVToInstances(file, hasHeaders)
	if err != nil {
		return nil, fmt.Errorf("could not parse csv '%s': %w", file, err)
	}
	// the grid groups attributes by storage type, the header keeps the column order
	order := make([]string, 0)
	for _, a := range base.ParseCSVGetAttributes(file, hasHeaders) {
		order = append(order, a.GetName())
	}
	t, err := FromInstances(instances, order...)
	if err != nil {
		return nil, fmt.Errorf("could not convert '%s': %w", file, err)
	}
	log.Debug().
		Str("file", file).
		Int("rows", t.Len()).
		Int("attributes", len(t.Domain.Attributes)).
		Bool("class", t.Domain.Class != nil).
		Msg("loaded dataset")
	return t, nil
}

// FromInstances converts a golearn data grid into a table.
// Features follow the given names, the ones not named come after them in grid order.
func FromInstances(grid base.FixedDataGrid, order ...string) (*Table, error) {
	classAttrs := grid.AllClassAttributes()
	isClass := make(map[string]bool, len(classAttrs))
	for _, a := range classAttrs {
		isClass[a.GetName()] = true
	}

	features := make([]base.Attribute, 0)
	for _, a := range grid.AllAttributes() {
		if !isClass[a.GetName()] {
			features = append(features, a)
		}
	}
	position := make(map[string]int, len(order))
	for i, name := range order {
		position[name] = i
	}
	sort.SliceStable(features, func(i, j int) bool {
		pi, ok := position[features[i].GetName()]
		if !ok {
			pi = len(order)
		}
		pj, ok := position[features[j].GetName()]
		if !ok {
			pj = len(order)
		}
		return pi < pj
	})

	attributes := make([]Attribute, len(features))
	featureSpecs := make([]base.AttributeSpec, len(features))
	for i, a := range features {
		attributes[i] = fromBase(a)
		spec, err := grid.GetAttribute(a)
		if err != nil {
			return nil, fmt.Errorf("could not resolve attribute '%s': %w", a.GetName(), err)
		}
		featureSpecs[i] = spec
	}

	var class *Attribute
	var classSpec base.AttributeSpec
	if len(classAttrs) > 0 {
		c := fromBase(classAttrs[0])
		class = &c
		spec, err := grid.GetAttribute(classAttrs[0])
		if err != nil {
			return nil, fmt.Errorf("could not resolve class '%s': %w", c.Name, err)
		}
		classSpec = spec
	}

	_, rows := grid.Size()
	x := make([][]float64, rows)
	var y []float64
	if class != nil {
		y = make([]float64, rows)
	}
	for r := 0; r < rows; r++ {
		row := make([]float64, len(features))
		for i, spec := range featureSpecs {
			row[i] = fromSysVal(attributes[i], features[i], grid.Get(spec, r))
		}
		x[r] = row
		if class != nil {
			y[r] = fromSysVal(*class, classAttrs[0], grid.Get(classSpec, r))
		}
	}

	return NewTable(NewDomain(attributes, class), x, y, nil)
}

// ToInstances converts a table into a golearn data grid.
// Only continuous and discrete features are carried over, the class attribute must be discrete.
func ToInstances(t *Table) (*base.DenseInstances, error) {
	instances := base.NewDenseInstances()

	specs := make([]base.AttributeSpec, len(t.Domain.Attributes))
	attrs := make([]base.Attribute, len(t.Domain.Attributes))
	for i, a := range t.Domain.Attributes {
		attr, err := toBase(a)
		if err != nil {
			return nil, err
		}
		attrs[i] = attr
		specs[i] = instances.AddAttribute(attr)
	}

	var classSpec base.AttributeSpec
	var classAttr base.Attribute
	if t.Domain.Class != nil {
		attr, err := toBase(*t.Domain.Class)
		if err != nil {
			return nil, err
		}
		classAttr = attr
		classSpec = instances.AddAttribute(attr)
		if err := instances.AddClassAttribute(attr); err != nil {
			return nil, fmt.Errorf("could not add class attribute: %w", err)
		}
	}

	if err := instances.Extend(t.Len()); err != nil {
		return nil, fmt.Errorf("could not allocate %d rows: %w", t.Len(), err)
	}

	for r, row := range t.X {
		for i, v := range row {
			instances.Set(specs[i], r, toSysVal(t.Domain.Attributes[i], attrs[i], v))
		}
		if classAttr != nil {
			instances.Set(classSpec, r, toSysVal(*t.Domain.Class, classAttr, t.Y[r]))
		}
	}
	return instances, nil
}

func fromBase(a base.Attribute) Attribute {
	switch attr := a.(type) {
	case *base.FloatAttribute:
		return NewContinuous(attr.GetName())
	case *base.CategoricalAttribute:
		return NewDiscrete(attr.GetName(), attr.GetValues()...)
	default:
		return NewOther(a.GetName())
	}
}

func toBase(a Attribute) (base.Attribute, error) {
	switch a.Kind {
	case Continuous:
		return base.NewFloatAttribute(a.Name), nil
	case Discrete:
		attr := base.NewCategoricalAttribute()
		attr.SetName(a.Name)
		for _, v := range a.Values {
			attr.GetSysValFromString(v)
		}
		return attr, nil
	case Other:
		return nil, fmt.Errorf("attribute '%s' of kind %s cannot be converted", a.Name, a.Kind)
	}
	return nil, fmt.Errorf("attribute '%s' has unknown kind %d", a.Name, int(a.Kind))
}

func fromSysVal(attr Attribute, a base.Attribute, b []byte) float64 {
	switch attr.Kind {
	case Continuous:
		return base.UnpackBytesToFloat(b)
	case Discrete:
		s := a.GetStringFromSysVal(b)
		for i, v := range attr.Values {
			if v == s {
				return float64(i)
			}
		}
		return math.NaN()
	case Other:
		return math.NaN()
	}
	return math.NaN()
}

func toSysVal(attr Attribute, a base.Attribute, v float64) []byte {
	switch attr.Kind {
	case Discrete:
		return a.GetSysValFromString(attr.Value(v))
	case Continuous, Other:
		return base.PackFloatToBytes(v)
	}
	return base.PackFloatToBytes(v)
}
