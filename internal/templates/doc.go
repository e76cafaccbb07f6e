// Package templates resolves a setup selection into the set of template
// files to assemble, and checks that every one of them can be read.
//
// All templates of a selection live under
//
//	<template root>/<method>/<geometry>/<model>/
//
// and the catalog node of the selection names the file of each facet.
// Which facets are included depends on the [setup.Capabilities] of the
// model: thermal models add the heat, cooling, flux and Robin templates
// and the temperature statistics; magnetic ones the magnetic pair;
// elastic ones one or two elastic pairs. Power and current statistics
// are always included.
//
// Resolution is all-or-nothing: [Resolve] returns either a complete,
// checked descriptor or an error.
package templates
