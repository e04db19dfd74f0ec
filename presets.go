package ledgersdk

import (
	"os"

	"gopkg.in/yaml.v3"
)

// networkNode is one entry of a config-file node list.
type networkNode struct {
	AccountID string `yaml:"account_id"`
	Address   string `yaml:"address"`
}

// networkConfig is the shape ForConfigFile expects, modeled on this
// codebase's usual "list of named entries under a top-level key" YAML
// config convention.
type networkConfig struct {
	Network  string        `yaml:"network"`
	LedgerID string        `yaml:"ledger_id"`
	Nodes    []networkNode `yaml:"nodes"`
}

func buildNetwork(nodes []networkNode) *Network {
	network := NewNetwork(nil)
	for _, n := range nodes {
		accountID, err := ParseAccountID(n.AccountID, "")
		if err != nil {
			continue
		}
		network.AddNode(NewNode(accountID, n.Address))
	}
	return network
}

// ForMainnet returns a client preconfigured with the well-known
// mainnet node list and ledger id.
func ForMainnet() *Client {
	network := buildNetwork(mainnetNodes)
	return NewClient(network, "mainnet").SetMirrorNetwork(mainnetMirrorNodes)
}

// ForTestnet returns a client preconfigured with the well-known
// testnet node list and ledger id.
func ForTestnet() *Client {
	network := buildNetwork(testnetNodes)
	return NewClient(network, "testnet").SetMirrorNetwork(testnetMirrorNodes)
}

// ForPreviewnet returns a client preconfigured with the well-known
// previewnet node list and ledger id.
func ForPreviewnet() *Client {
	network := buildNetwork(previewnetNodes)
	return NewClient(network, "previewnet").SetMirrorNetwork(previewnetMirrorNodes)
}

// ForName constructs a preset client from its textual ledger
// identifier ("mainnet", "testnet", "previewnet").
func ForName(name string) (*Client, error) {
	switch name {
	case "mainnet":
		return ForMainnet(), nil
	case "testnet":
		return ForTestnet(), nil
	case "previewnet":
		return ForPreviewnet(), nil
	default:
		return nil, newErr(ErrInvalidArgument, "unknown ledger name: "+name, nil)
	}
}

// ForConfigFile builds a client from a YAML file listing nodes and a
// ledger id, for private or local networks.
func ForConfigFile(path string) (*Client, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, newErr(ErrInvalidArgument, "could not read network config file", err)
	}
	var cfg networkConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, newErr(ErrParse, "could not parse network config file", err)
	}
	if len(cfg.Nodes) == 0 {
		return nil, newErr(ErrInvalidArgument, "network config file lists no nodes", nil)
	}
	network := buildNetwork(cfg.Nodes)
	return NewClient(network, cfg.LedgerID), nil
}

// The well-known node lists below are placeholders in the shape a real
// preset would take; operators of a private or test network should
// use ForConfigFile instead.
var (
	mainnetNodes = []networkNode{
		{AccountID: "0.0.3", Address: "node1.mainnet.example.com:50211"},
		{AccountID: "0.0.4", Address: "node2.mainnet.example.com:50211"},
		{AccountID: "0.0.5", Address: "node3.mainnet.example.com:50211"},
	}
	testnetNodes = []networkNode{
		{AccountID: "0.0.3", Address: "node1.testnet.example.com:50211"},
		{AccountID: "0.0.4", Address: "node2.testnet.example.com:50211"},
	}
	previewnetNodes = []networkNode{
		{AccountID: "0.0.3", Address: "node1.previewnet.example.com:50211"},
	}

	mainnetMirrorNodes    = []string{"mainnet-mirror.example.com:443"}
	testnetMirrorNodes    = []string{"testnet-mirror.example.com:443"}
	previewnetMirrorNodes = []string{"previewnet-mirror.example.com:443"}
)
