// Package domain holds the core entities, repository contracts, and
// sentinel errors shared by every layer. It depends on nothing but the
// standard library so services, storage adapters, and handlers can all
// import it freely.
package domain
