package std

import (
	"encoding/json"
	"fmt"
)

// GenInitOptions will produce basic genesis options for one rich account,
// to use for dev mode.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "STX"
	if len(args) > 0 {
		ticker = args[0]
	}
	addr := "0102030405060708090021222324252627282930"

	opts := fmt.Sprintf(`{
  "cash": [
    {
      "address": "%s",
      "coins": [
        {"whole": 123456789, "ticker": "%s"}
      ]
    }
  ],
  "conf": {
    "escrow": {
      "authority": "%s",
      "max_escrows": 10000
    }
  }
}`, addr, ticker, addr)
	return []byte(opts), nil
}
