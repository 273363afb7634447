package assetvault

// ClientCredential is one configured client entry as it appears in
// configuration, before registry validation.
type ClientCredential struct {
	Name   string `json:"name" yaml:"name" mapstructure:"name" validate:"required"`
	ID     string `json:"id" yaml:"id" mapstructure:"id" validate:"required"`
	Secret string `json:"secret" yaml:"secret" mapstructure:"secret" validate:"required"`
}

// Client is one registered tenant. Name doubles as the URL path segment and
// the on-disk subdirectory name under the assets root.
type Client struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Secret   string `json:"-"`
	AssetDir string `json:"asset_dir"`
}

// AssetIndex maps extension-stripped relative file paths to fully-qualified
// public URLs. It is built fresh on every index request and never cached.
type AssetIndex map[string]string
