package registry

import (
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
)

// AssetRegistryABI covers the subset of the registry contract the marketplace
// consumes: custody, approval, enumeration and royalty metadata.
var AssetRegistryABI ethabi.ABI

var assetRegistryABI = `[
{"type":"function","name":"ownerOf","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"tokenId"}],"outputs":[{"type":"address"}]},
{"type":"function","name":"isApprovedBy","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"tokenId"},{"type":"address","name":"account"}],"outputs":[{"type":"bool"}]},
{"type":"function","name":"transferFrom","constant":false,"stateMutability":"nonpayable","inputs":[{"type":"address","name":"from"},{"type":"address","name":"to"},{"type":"uint256","name":"tokenId"}],"outputs":[]},
{"type":"function","name":"totalSupply","constant":true,"stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"tokenByIndex","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"index"}],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"exists","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"tokenId"}],"outputs":[{"type":"bool"}]},
{"type":"function","name":"royaltyRecord","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"tokenId"}],"outputs":[{"type":"uint16","name":"rateBps"},{"type":"address","name":"creator"}]}
]`

func init() {
	_abi, err := ethabi.JSON(strings.NewReader(assetRegistryABI))
	if err != nil {
		panic(err)
	}
	AssetRegistryABI = _abi
}
