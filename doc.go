// Package assetvault provides a multi-tenant static asset server library.
//
// Each registered client (tenant) owns an isolated directory under a shared
// assets root. A client authenticates with an id/secret header pair to fetch
// a JSON index of its files as public URLs; the files themselves are served
// unauthenticated under a path segment scoped to the client name.
//
// # Key Components
//
//   - Registry: immutable set of known clients, built once at startup from
//     configuration and injected into the HTTP layer
//   - AssetService: combines the Registry with an AssetStorage backend and
//     builds per-request asset indexes
//   - AssetStorage: interface for read-only file access (filesystem-backed,
//     extensible to other backends)
//   - AssetIndex: ephemeral mapping from extension-stripped relative paths
//     to fully-qualified fetch URLs
//
// # Example Usage
//
//	registry, err := assetvault.NewRegistry("./assets", creds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	root, _ := os.OpenRoot("./assets")
//	service, err := assetvault.NewAssetService(registry, filesystem.NewStore(root))
//
//	// Build the index for a client
//	index, err := service.BuildIndex(ctx, "https://cdn.example.com", client)
//
// See the http package for the REST API implementation and the config package
// for configuration loading.
package assetvault
