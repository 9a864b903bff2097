// Package scheduling decides which playlist schedule governs a tenant's players at a given
// instant and keeps administrators from storing schedules that silently overlap.
//
// Everything here is a pure function of its inputs except the Detector, Pipeline and
// Resolver, which read the tenant's schedules and playlists through small interfaces.
package scheduling
