// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

/*
Package discovery assembles randomized "crate digging" album collections.

Discover runs in four stages:

 1. Collect candidates. Without a genre filter, a search collector samples
    random words and letter fragments from a fixed pool and reads a random
    page of album search results for each (target 3 x count), then a genre
    collector samples artists of shuffled genres and picks one random album
    per artist (target 2 x count, stopping at twice its target). With a
    genre filter only the genre collector runs, over the requested genres,
    with a target of 4 x count.
 2. Merge the candidate lists, deduplicate by album id (first seen wins)
    and shuffle.
 3. Enrich in batches (10 by default). Each album in a batch is enriched
    concurrently: its first track preview and its details are looked up,
    and albums without a preview or a cover are dropped. A MinTracks filter
    drops albums whose known track count is lower. Batches stop once count
    albums are accepted.
 4. Shuffle the accepted albums and truncate to count.

When the candidate pool runs dry before count albums are accepted, fewer
albums are returned. The shortfall is logged at debug level and counted in
discovery_shortfall_total.

The Catalog interface abstracts the upstream API; deezer.Client implements
it. Randomness comes from a mutex guarded math/rand/v2 generator that tests
seed for reproducible runs.
*/
package discovery
