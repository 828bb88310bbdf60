/*
idxtool -- encode, decode and store index relationship records.

Records are written with integer locations, the identity encoding, so the
numbers on the command line are the numbers in the record.

Encode a record and see what its header byte says

    $ idxtool encode --bidi --src=17
    3b0011
    header 0x3b bidirectional
      sources      narrow singleton
      destinations narrow empty

Decode one

    $ idxtool decode 3b0011
    BidirectionalEdges{sources: [17], destinations: []}

Append records to a log kept in a store and list them. The store name
picks the backend: memFS:, nio: or nioMapped:.

    $ idxtool append --src=1,2,3 nioMapped:/tmp/edges.log
    0
    $ idxtool dump nioMapped:/tmp/edges.log
    0	ReverseEdges{sources: [1 2 3]}

A YAML config (-c) tunes the backends:

    mapped:
      preload: true
      release_timeout: 10s
      max_map_size: 1073741824
    disk:
      cache_pages: 64
*/
package main
