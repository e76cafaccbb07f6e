package catalog

// SupportedMethods lists the methods of the catalog, in document order.
// Administrative keys and methods with no content are left out.
func SupportedMethods(c *Catalog) []string {
	methods := []string{}
	for _, key := range c.methods.keys {
		if reserved[key] || c.methods.vals[key].Len() == 0 {
			continue
		}
		methods = append(methods, key)
	}
	return methods
}

// SupportedModels lists the models available under method/time/geom, in
// document order. It returns an empty list when the path is absent.
func SupportedModels(c *Catalog, method, geom, time string) []string {
	m, ok := c.methods.Get(method)
	if !ok {
		return []string{}
	}
	t, ok := m.Get(time)
	if !ok {
		return []string{}
	}
	g, ok := t.Get(geom)
	if !ok {
		return []string{}
	}
	return g.Keys()
}

// SupportedTimes lists the time regimes of a method.
func SupportedTimes(c *Catalog, method string) []string {
	m, ok := c.methods.Get(method)
	if !ok {
		return []string{}
	}
	return m.Keys()
}

// SupportedGeometries lists the geometries of a method and time regime.
func SupportedGeometries(c *Catalog, method, time string) []string {
	m, ok := c.methods.Get(method)
	if !ok {
		return []string{}
	}
	t, ok := m.Get(time)
	if !ok {
		return []string{}
	}
	return t.Keys()
}

// SupportedCoolings lists the selectable cooling keys of a node. The
// "robin" entry is the boundary condition template, not a cooling mode.
func SupportedCoolings(n *ModelNode) []string {
	var keys []string
	for _, k := range n.Cooling.keys {
		if k != "robin" {
			keys = append(keys, k)
		}
	}
	return keys
}
