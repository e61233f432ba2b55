// smart-tp is a developer tool for the smart contract transaction processor:
// it encodes payloads, seeds genesis state and applies transactions against
// a local badger store.
package main

func main() {
	Execute()
}
