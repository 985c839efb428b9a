// Package prefio builds markets from preference files.
//
// Two document shapes are accepted, in YAML or JSON/JSON5:
//
//	preferences:          # ids 0..N-1, agent k owns item k
//	  - [1, 2, 0]
//	  - [2, 0, 1]
//	  - [0, 1, 2]
//
//	agents:               # named agents, list order assigns ids
//	  - name: alice
//	    prefers: [bob, alice]
//	  - name: bob
//	    prefers: [alice, bob]
//
// Names are trimmed and NFC-normalized before matching, so composed and decomposed
// spellings of the same name refer to one agent. The resulting matrix is checked
// with market.Validate; the clearing core itself never validates.
package prefio
