package resource

// Props is the generic attribute map a lifecycle request carries for a
// resource node. Values are strings, numbers, booleans, nested Props, or
// lists thereof; lifecycle callers stringify scalars, so typing is restored
// by the gateway's parameter projection.
type Props = map[string]any

// CustomAttrPrefix marks attributes that describe child collections or
// bookkeeping fields rather than remote API fields. They are stripped from
// projected API parameters but drive child reconciliation.
const CustomAttrPrefix = "CR_"

// Custom attribute names, as they appear in configuration trees.
const (
	AttrSlotTypes           = CustomAttrPrefix + "slotTypes"
	AttrBotLocales          = CustomAttrPrefix + "botLocales"
	AttrIntents             = CustomAttrPrefix + "intents"
	AttrSlots               = CustomAttrPrefix + "slots"
	AttrSlotTypeName        = CustomAttrPrefix + "slotTypeName"
	AttrBotLocaleIDs        = CustomAttrPrefix + "botLocaleIds"
	AttrLastUpdatedDateTime = CustomAttrPrefix + "lastUpdatedDateTime"
)

// Reserved identities and namespaces of the remote service.
const (
	DraftVersion = "DRAFT"

	// Built-in slot types live in a reserved namespace and cannot be listed;
	// their name doubles as their identifier.
	BuiltinPrefix = "AMAZON."

	TestBotAliasName = "TestBotAlias"
	TestBotAliasID   = "TSTALIASID"

	FallbackIntentName      = "FallbackIntent"
	FallbackIntentID        = "FALLBCKINT"
	FallbackIntentSignature = "AMAZON.FallbackIntent"
)
