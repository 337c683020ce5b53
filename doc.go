/*
Package keyroute implements a deterministic key-to-node routing structure.

In general, key routing is all about mapping of an object from a very big
set of values (e.g. request id) to an object from a quite small set (e.g.
server address). The word "deterministic" means that the mapping depends
only on the current membership set, never on the history of additions and
removals: two independent processes that agree on membership agree on the
owner of every key without exchanging any state.

This is achieved by keeping the nodes as a canonically sorted sequence and
reducing an avalanche-mixed digest of the key modulo the set size.

A Router is an immutable value. Every mutator returns a new Router and
never touches the receiver, so any number of goroutines may route over a
shared Router without coordination, and holding on to an old Router keeps
the old membership view intact. Membership changes pay a full resort of
the node sequence on the assumption that they are rare relative to routing
calls, which are constant time.

Unlike consistent hashing rings, this structure does not bound key
movement: adding or removing a single node may redistribute the whole key
space among the remaining nodes. The trade-off buys a much simpler
structure and an even distribution at every membership size.
*/
package keyroute
