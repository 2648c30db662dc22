// Package pagination drives cursor-paginated timeline fetches and
// guarantees they terminate.
//
// Upstream cursors are not guaranteed well-behaved: a buggy or stuck
// upstream may return the same cursor forever, cycle through a set of
// cursors, or keep producing fresh cursors past any amount of data worth
// fetching. The Pager layers four independent stop rules over the raw
// page stream (no-advance, cycle detection, cursor absence, item budget),
// plus an empty-page guard, so a fetch run issues O(maxResults) page
// requests in the worst case no matter what the upstream does.
//
// Items are yielded one at a time through the scanner idiom (Next, Item,
// Err). Each yielded tweet is stamped with the next-page cursor returned
// alongside it, recording where a resumed fetch would continue from. A
// page response without pagination metadata is a protocol error: the
// sequence ends cleanly and the error is reported through Err.
package pagination
