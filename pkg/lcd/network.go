package lcd

import (
	"errors"
	"fmt"
)

// ErrUnknownNetwork is returned for a network name without defaults
var ErrUnknownNetwork = errors.New("unknown network")

// Network holds the endpoints of a chain
type Network struct {
	Name    string
	ChainID string
	LCD     string
}

// Default networks
var (
	Mainnet = Network{Name: "mainnet", ChainID: "columbus-5", LCD: "https://lcd.terra.dev"}
	Testnet = Network{Name: "testnet", ChainID: "pisco-1", LCD: "https://pisco-lcd.terra.dev"}
)

// NetworkByName returns the default network with the given name
func NetworkByName(name string) (Network, error) {
	switch name {
	case Mainnet.Name:
		return Mainnet, nil
	case Testnet.Name:
		return Testnet, nil
	default:
		return Network{}, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
	}
}

// BaseURL returns override when set, otherwise the LCD endpoint of the named network
func BaseURL(network, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	n, err := NetworkByName(network)
	if err != nil {
		return "", err
	}
	return n.LCD, nil
}
