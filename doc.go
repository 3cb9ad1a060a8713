// Package memdex provides an embedded knowledge indexing and search engine
// backed by Redis or a plain directory of files.
//
// Entries are scored at indexing time (a base score weighted by the author's
// importance plus a corpus-frequency bonus) and served from an in-memory
// inverted index. Every mutation snapshots the corpus to the configured store,
// so a client reopened on the same store resumes where it left off.
//
// # Quick start
//
//	client, _ := memdex.New(ctx,
//	    memdex.WithFileStore("./data"),
//	    memdex.WithAutoIndex(),
//	)
//	defer client.Close()
//
//	e, _ := client.Entries().Add(ctx, memdex.Draft{
//	    Title:      "Neural Nets",
//	    Content:    "neural networks learn patterns",
//	    Importance: 80,
//	})
//
//	hits := client.Search().Query("neural")
//	for _, h := range hits {
//	    fmt.Println(h.Entry.Title, h.Score)
//	}
//
// Without WithAutoIndex new entries stay unindexed until an explicit
// client.Index().Entry(ctx, id) or client.Index().All(ctx) pass.
package memdex
