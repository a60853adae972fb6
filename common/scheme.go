package common

// TableSpace divides a key-value storage into spaces by adding a prefix to the key.
type TableSpace byte

const (
	// StorageKeySpace holds storage cells, keyed by address and storage key.
	StorageKeySpace TableSpace = 'S'
	// ClassHashKeySpace holds the class hash deployed at an address.
	ClassHashKeySpace TableSpace = 'C'
	// NonceKeySpace holds account nonces.
	NonceKeySpace TableSpace = 'N'
	// CompiledClassHashKeySpace holds compiled class hashes, keyed by class hash.
	CompiledClassHashKeySpace TableSpace = 'K'
	// ClassDefinitionKeySpace holds raw class definitions, keyed by class hash.
	ClassDefinitionKeySpace TableSpace = 'D'
)

// DbKey is a table space prefix followed by up to two felts.
type DbKey []byte

// ToDBKey converts the given felt to a key in this table space.
func (t TableSpace) ToDBKey(key Felt) DbKey {
	bytes := key.Bytes()
	res := make(DbKey, 0, 1+FeltSize)
	res = append(res, byte(t))
	return append(res, bytes[:]...)
}

// ToDBPairKey converts the given felt pair to a key in this table space.
func (t TableSpace) ToDBPairKey(first, second Felt) DbKey {
	a, b := first.Bytes(), second.Bytes()
	res := make(DbKey, 0, 1+2*FeltSize)
	res = append(res, byte(t))
	res = append(res, a[:]...)
	return append(res, b[:]...)
}

// StorageDBKey is the database key of the given storage cell.
func StorageDBKey(address ContractAddress, key StorageKey) DbKey {
	return StorageKeySpace.ToDBPairKey(Felt(address), Felt(key))
}

// KeyValueWriter is a key-value store StateDiffs can be written to.
type KeyValueWriter interface {
	Put(key DbKey, value []byte) error
	Delete(key DbKey) error
}

// KeyValueDiffTarget writes the entries of a StateDiff to a key-value store
// using the keys of this scheme. Zero values are deleted instead of stored.
type KeyValueDiffTarget struct {
	Writer KeyValueWriter
}

func (t KeyValueDiffTarget) SetStorage(address ContractAddress, key StorageKey, value Felt) error {
	return t.put(StorageDBKey(address, key), value)
}

func (t KeyValueDiffTarget) SetNonce(address ContractAddress, nonce Nonce) error {
	return t.put(NonceKeySpace.ToDBKey(Felt(address)), Felt(nonce))
}

func (t KeyValueDiffTarget) SetClassHash(address ContractAddress, classHash ClassHash) error {
	return t.put(ClassHashKeySpace.ToDBKey(Felt(address)), Felt(classHash))
}

func (t KeyValueDiffTarget) SetCompiledClassHash(classHash ClassHash, compiledClassHash CompiledClassHash) error {
	return t.put(CompiledClassHashKeySpace.ToDBKey(Felt(classHash)), Felt(compiledClassHash))
}

func (t KeyValueDiffTarget) put(key DbKey, value Felt) error {
	if value.IsZero() {
		return t.Writer.Delete(key)
	}
	bytes := value.Bytes()
	return t.Writer.Put(key, bytes[:])
}
