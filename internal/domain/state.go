package domain

// KeyPrefix namespaces every memdex key in the blob store.
const KeyPrefix = "memdex:"

// StateKey is the blob-store key holding the serialized engine state.
const StateKey = KeyPrefix + "state"
