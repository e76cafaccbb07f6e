// Package setup provides the core types shared by the magnet setup tools.
//
// A setup is described by a [Selection]: the numerical method, the time
// regime, the geometry, the physical model and the cooling mode, plus a
// linearity switch. The physics carried by a model identifier are
// captured once as [Capabilities]. Resolving a selection against the
// catalog yields a [Descriptor] mapping template slots to file paths.
//
// # Errors
//
// Every failure surfaced by the resolver and its collaborators falls in
// one of four classes, each with a sentinel and a typed error:
//
//   - [ErrConfigurationMissing] / [ConfigurationMissingError]
//   - [ErrCatalogLookup] / [CatalogLookupError]
//   - [ErrTemplateFileMissing] / [TemplateFileMissingError]
//   - [ErrUnknownServer] / [UnknownServerError]
//
// None of them are retried: they all come from static configuration.
package setup
