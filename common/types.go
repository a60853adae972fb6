package common

// ContractAddress identifies a deployed contract instance.
type ContractAddress Felt

// ClassHash identifies a declared contract class.
type ClassHash Felt

// CompiledClassHash is the hash of the compiled form of a class.
type CompiledClassHash Felt

// StorageKey addresses a storage cell within a contract's storage.
type StorageKey Felt

// Nonce is an account's transaction counter.
type Nonce Felt

func (a ContractAddress) String() string   { return Felt(a).String() }
func (h ClassHash) String() string         { return Felt(h).String() }
func (h CompiledClassHash) String() string { return Felt(h).String() }
func (k StorageKey) String() string        { return Felt(k).String() }
func (n Nonce) String() string             { return Felt(n).String() }

func (a ContractAddress) Compare(o ContractAddress) int { return Felt(a).Cmp(Felt(o)) }
func (h ClassHash) Compare(o ClassHash) int             { return Felt(h).Cmp(Felt(o)) }
func (k StorageKey) Compare(o StorageKey) int           { return Felt(k).Cmp(Felt(o)) }

func (a ContractAddress) MarshalJSON() ([]byte, error)   { return Felt(a).MarshalJSON() }
func (h ClassHash) MarshalJSON() ([]byte, error)         { return Felt(h).MarshalJSON() }
func (h CompiledClassHash) MarshalJSON() ([]byte, error) { return Felt(h).MarshalJSON() }
func (k StorageKey) MarshalJSON() ([]byte, error)        { return Felt(k).MarshalJSON() }
func (n Nonce) MarshalJSON() ([]byte, error)             { return Felt(n).MarshalJSON() }

func (a *ContractAddress) UnmarshalJSON(data []byte) error   { return (*Felt)(a).UnmarshalJSON(data) }
func (h *ClassHash) UnmarshalJSON(data []byte) error         { return (*Felt)(h).UnmarshalJSON(data) }
func (h *CompiledClassHash) UnmarshalJSON(data []byte) error { return (*Felt)(h).UnmarshalJSON(data) }
func (k *StorageKey) UnmarshalJSON(data []byte) error        { return (*Felt)(k).UnmarshalJSON(data) }
func (n *Nonce) UnmarshalJSON(data []byte) error             { return (*Felt)(n).UnmarshalJSON(data) }

// Address is a convenience constructor for small contract addresses.
func Address(v uint64) ContractAddress {
	return ContractAddress(FeltFromUint64(v))
}

// Key is a convenience constructor for small storage keys.
func Key(v uint64) StorageKey {
	return StorageKey(FeltFromUint64(v))
}
