// Package company implements the Identity Resolver component.
//
// Each (company name, ticker symbol) pair observed in a batch resolves to a
// stable company id. A symbol seen for the first time creates a company; a
// known symbol reported under a new name renames the company, except when the
// new name carries the "SRD" prefix, a market convention marking a
// deferred-settlement listing variant rather than a true rename.
//
// The resolver is the sole writer of the companies table. Resolution is
// serialized: concurrent batches introducing the same symbol must not race
// to create duplicate identities.
package company
