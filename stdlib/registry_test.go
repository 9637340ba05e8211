package stdlib

import "testing"

func TestRegistryCoversEveryStdlibCategory(t *testing.T) {
	expectedNamespaces := []string{
		"Core", "Text", "Math", "List", "Map", "Time", "Random",
		"Crypto", "Pattern", "Filesystem", "Web", "Subprocess",
	}
	for _, namespace := range expectedNamespaces {
		if _, exists := StdlibRegistry[namespace]; !exists {
			t.Errorf("expected namespace %s in registry", namespace)
		}
	}
	if len(StdlibRegistry) != len(expectedNamespaces) {
		t.Errorf("expected %d namespaces, got %d", len(expectedNamespaces), len(StdlibRegistry))
	}
}

func TestGetFunctionsReturnsNilForUnknownNamespace(t *testing.T) {
	if funcs := GetFunctions("NoSuchNamespace"); funcs != nil {
		t.Errorf("expected nil for unknown namespace, got %v", funcs)
	}
}

func TestGetNamespacesIsSorted(t *testing.T) {
	namespaces := GetNamespaces()
	for i := 1; i < len(namespaces); i++ {
		if namespaces[i-1] > namespaces[i] {
			t.Fatalf("namespaces not sorted: %v", namespaces)
		}
	}
}

func TestTotalFunctionCountMatchesSumOfNamespaces(t *testing.T) {
	sum := 0
	for _, funcs := range StdlibRegistry {
		sum += len(funcs)
	}
	if got := TotalFunctionCount(); got != sum {
		t.Errorf("TotalFunctionCount() = %d, want %d", got, sum)
	}
}

// Every FunctionDef registered with a real Go body via RegisterNatives
// must also appear in the catalogue, so the type checker and the
// interpreter never disagree about which functions exist.
func TestEveryImplementedNativeIsCatalogued(t *testing.T) {
	implemented := make(map[string]bool)
	for _, fn := range coreNatives() {
		implemented[fn.Name] = true
	}
	for _, fn := range textNatives() {
		implemented[fn.Name] = true
	}
	for _, fn := range mathNatives() {
		implemented[fn.Name] = true
	}
	for _, fn := range listNatives() {
		implemented[fn.Name] = true
	}
	for _, fn := range mapNatives() {
		implemented[fn.Name] = true
	}
	for _, fn := range timeNatives() {
		implemented[fn.Name] = true
	}
	for _, fn := range randomNatives() {
		implemented[fn.Name] = true
	}
	for _, fn := range cryptoNatives() {
		implemented[fn.Name] = true
	}
	for _, fn := range patternNatives() {
		implemented[fn.Name] = true
	}

	catalogued := make(map[string]bool)
	for _, funcs := range StdlibRegistry {
		for _, f := range funcs {
			catalogued[f.Name] = true
		}
	}

	for name := range implemented {
		if !catalogued[name] {
			t.Errorf("native %q has a Go body but no catalogue entry", name)
		}
	}
}
