package lexmodel

var (
	memberString   = Member{Kind: KindString}
	memberBool     = Member{Kind: KindBool}
	memberInteger  = Member{Kind: KindInteger}
	memberFloat    = Member{Kind: KindFloat}
	memberMap      = Member{Kind: KindMap}
	memberDocument = Member{Kind: KindDocument}
)

var filterMember = Member{
	Kind: KindList,
	Elem: &Member{
		Kind: KindStructure,
		Shape: &Shape{
			Required: []string{"name", "values", "operator"},
			Members: map[string]Member{
				"name":     memberString,
				"values":   {Kind: KindList, Elem: &memberString},
				"operator": memberString,
			},
		},
	},
}

var sortByMember = Member{
	Kind: KindStructure,
	Shape: &Shape{
		Required: []string{"attribute", "order"},
		Members: map[string]Member{
			"attribute": memberString,
			"order":     memberString,
		},
	},
}

var dataPrivacyMember = Member{
	Kind: KindStructure,
	Shape: &Shape{
		Required: []string{"childDirected"},
		Members: map[string]Member{
			"childDirected": memberBool,
		},
	},
}

var voiceSettingsMember = Member{
	Kind: KindStructure,
	Shape: &Shape{
		Required: []string{"voiceId"},
		Members: map[string]Member{
			"voiceId": memberString,
			"engine":  memberString,
		},
	},
}

var sampleUtterancesMember = Member{
	Kind: KindList,
	Elem: &Member{
		Kind: KindStructure,
		Shape: &Shape{
			Required: []string{"utterance"},
			Members: map[string]Member{
				"utterance": memberString,
			},
		},
	},
}

var slotPrioritiesMember = Member{
	Kind: KindList,
	Elem: &Member{
		Kind: KindStructure,
		Shape: &Shape{
			Required: []string{"priority", "slotId"},
			Members: map[string]Member{
				"priority": memberInteger,
				"slotId":   memberString,
			},
		},
	},
}

var slotTypeValuesMember = Member{
	Kind: KindList,
	Elem: &Member{
		Kind: KindStructure,
		Shape: &Shape{
			Members: map[string]Member{
				"sampleValue": {
					Kind: KindStructure,
					Shape: &Shape{
						Required: []string{"value"},
						Members:  map[string]Member{"value": memberString},
					},
				},
				"synonyms": {
					Kind: KindList,
					Elem: &Member{
						Kind: KindStructure,
						Shape: &Shape{
							Required: []string{"value"},
							Members:  map[string]Member{"value": memberString},
						},
					},
				},
			},
		},
	},
}

var valueSelectionSettingMember = Member{
	Kind: KindStructure,
	Shape: &Shape{
		Required: []string{"resolutionStrategy"},
		Members: map[string]Member{
			"resolutionStrategy": memberString,
			"regexFilter": {
				Kind: KindStructure,
				Shape: &Shape{
					Required: []string{"pattern"},
					Members:  map[string]Member{"pattern": memberString},
				},
			},
		},
	},
}

func listShape(required ...string) Shape {
	members := map[string]Member{
		"botId":      memberString,
		"botVersion": memberString,
		"localeId":   memberString,
		"intentId":   memberString,
		"filters":    filterMember,
		"sortBy":     sortByMember,
		"maxResults": memberInteger,
		"nextToken":  memberString,
	}
	return Shape{Required: required, Members: members}
}

var operations = map[string]Operation{
	"CreateBot": {
		Name: "CreateBot",
		Input: Shape{
			Required: []string{"botName", "roleArn", "dataPrivacy", "idleSessionTTLInSeconds"},
			Members: map[string]Member{
				"botName":                 memberString,
				"description":             memberString,
				"roleArn":                 memberString,
				"dataPrivacy":             dataPrivacyMember,
				"idleSessionTTLInSeconds": memberInteger,
				"botTags":                 memberMap,
				"testBotAliasTags":        memberMap,
			},
		},
		Route: Route{Method: "PUT", Path: "/bots/"},
	},
	"UpdateBot": {
		Name: "UpdateBot",
		Input: Shape{
			Required: []string{"botId", "botName", "roleArn", "dataPrivacy", "idleSessionTTLInSeconds"},
			Members: map[string]Member{
				"botId":                   memberString,
				"botName":                 memberString,
				"description":             memberString,
				"roleArn":                 memberString,
				"dataPrivacy":             dataPrivacyMember,
				"idleSessionTTLInSeconds": memberInteger,
			},
		},
		Route: Route{Method: "PUT", Path: "/bots/{botId}/"},
	},
	"DeleteBot": {
		Name: "DeleteBot",
		Input: Shape{
			Required: []string{"botId"},
			Members: map[string]Member{
				"botId":                  memberString,
				"skipResourceInUseCheck": memberBool,
			},
		},
		Route: Route{Method: "DELETE", Path: "/bots/{botId}/"},
	},
	"DescribeBot": {
		Name: "DescribeBot",
		Input: Shape{
			Required: []string{"botId"},
			Members:  map[string]Member{"botId": memberString},
		},
		Route: Route{Method: "GET", Path: "/bots/{botId}/"},
	},
	"ListBots": {
		Name: "ListBots",
		Input: Shape{
			Members: map[string]Member{
				"filters":    filterMember,
				"sortBy":     sortByMember,
				"maxResults": memberInteger,
				"nextToken":  memberString,
			},
		},
		Route: Route{Method: "POST", Path: "/bots/"},
	},

	"CreateBotLocale": {
		Name: "CreateBotLocale",
		Input: Shape{
			Required: []string{"botId", "botVersion", "localeId", "nluIntentConfidenceThreshold"},
			Members: map[string]Member{
				"botId":                        memberString,
				"botVersion":                   memberString,
				"localeId":                     memberString,
				"description":                  memberString,
				"nluIntentConfidenceThreshold": memberFloat,
				"voiceSettings":                voiceSettingsMember,
			},
		},
		Route: Route{Method: "PUT", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/"},
	},
	"UpdateBotLocale": {
		Name: "UpdateBotLocale",
		Input: Shape{
			Required: []string{"botId", "botVersion", "localeId", "nluIntentConfidenceThreshold"},
			Members: map[string]Member{
				"botId":                        memberString,
				"botVersion":                   memberString,
				"localeId":                     memberString,
				"description":                  memberString,
				"nluIntentConfidenceThreshold": memberFloat,
				"voiceSettings":                voiceSettingsMember,
			},
		},
		Route: Route{Method: "PUT", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/"},
	},
	"DeleteBotLocale": {
		Name: "DeleteBotLocale",
		Input: Shape{
			Required: []string{"botId", "botVersion", "localeId"},
			Members: map[string]Member{
				"botId":      memberString,
				"botVersion": memberString,
				"localeId":   memberString,
			},
		},
		Route: Route{Method: "DELETE", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/"},
	},
	"DescribeBotLocale": {
		Name: "DescribeBotLocale",
		Input: Shape{
			Required: []string{"botId", "botVersion", "localeId"},
			Members: map[string]Member{
				"botId":      memberString,
				"botVersion": memberString,
				"localeId":   memberString,
			},
		},
		Route: Route{Method: "GET", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/"},
	},
	"ListBotLocales": {
		Name:  "ListBotLocales",
		Input: listShape("botId", "botVersion"),
		Route: Route{Method: "POST", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/"},
	},
	"BuildBotLocale": {
		Name: "BuildBotLocale",
		Input: Shape{
			Required: []string{"botId", "botVersion", "localeId"},
			Members: map[string]Member{
				"botId":      memberString,
				"botVersion": memberString,
				"localeId":   memberString,
			},
		},
		Route: Route{Method: "POST", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/"},
	},

	"CreateIntent": {
		Name: "CreateIntent",
		Input: Shape{
			Required: []string{"botId", "botVersion", "localeId", "intentName"},
			Members: map[string]Member{
				"botId":                     memberString,
				"botVersion":                memberString,
				"localeId":                  memberString,
				"intentName":                memberString,
				"description":               memberString,
				"parentIntentSignature":     memberString,
				"sampleUtterances":          sampleUtterancesMember,
				"dialogCodeHook":            {Kind: KindStructure, Shape: &Shape{Required: []string{"enabled"}, Members: map[string]Member{"enabled": memberBool}}},
				"fulfillmentCodeHook":       memberDocument,
				"intentConfirmationSetting": memberDocument,
				"intentClosingSetting":      memberDocument,
				"inputContexts":             {Kind: KindList, Elem: &Member{Kind: KindStructure, Shape: &Shape{Required: []string{"name"}, Members: map[string]Member{"name": memberString}}}},
				"outputContexts":            {Kind: KindList, Elem: &Member{Kind: KindStructure, Shape: &Shape{Required: []string{"name", "timeToLiveInSeconds", "turnsToLive"}, Members: map[string]Member{"name": memberString, "timeToLiveInSeconds": memberInteger, "turnsToLive": memberInteger}}}},
				"kendraConfiguration":       memberDocument,
			},
		},
		Route: Route{Method: "PUT", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/intents/"},
	},
	"UpdateIntent": {
		Name: "UpdateIntent",
		Input: Shape{
			Required: []string{"botId", "botVersion", "localeId", "intentId", "intentName"},
			Members: map[string]Member{
				"botId":                     memberString,
				"botVersion":                memberString,
				"localeId":                  memberString,
				"intentId":                  memberString,
				"intentName":                memberString,
				"description":               memberString,
				"parentIntentSignature":     memberString,
				"sampleUtterances":          sampleUtterancesMember,
				"dialogCodeHook":            {Kind: KindStructure, Shape: &Shape{Required: []string{"enabled"}, Members: map[string]Member{"enabled": memberBool}}},
				"fulfillmentCodeHook":       memberDocument,
				"intentConfirmationSetting": memberDocument,
				"intentClosingSetting":      memberDocument,
				"inputContexts":             {Kind: KindList, Elem: &Member{Kind: KindStructure, Shape: &Shape{Required: []string{"name"}, Members: map[string]Member{"name": memberString}}}},
				"outputContexts":            {Kind: KindList, Elem: &Member{Kind: KindStructure, Shape: &Shape{Required: []string{"name", "timeToLiveInSeconds", "turnsToLive"}, Members: map[string]Member{"name": memberString, "timeToLiveInSeconds": memberInteger, "turnsToLive": memberInteger}}}},
				"kendraConfiguration":       memberDocument,
				"slotPriorities":            slotPrioritiesMember,
			},
		},
		Route: Route{Method: "PUT", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/intents/{intentId}/"},
	},
	"DeleteIntent": {
		Name: "DeleteIntent",
		Input: Shape{
			Required: []string{"botId", "botVersion", "localeId", "intentId"},
			Members: map[string]Member{
				"botId":      memberString,
				"botVersion": memberString,
				"localeId":   memberString,
				"intentId":   memberString,
			},
		},
		Route: Route{Method: "DELETE", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/intents/{intentId}/"},
	},
	"ListIntents": {
		Name:  "ListIntents",
		Input: listShape("botId", "botVersion", "localeId"),
		Route: Route{Method: "POST", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/intents/"},
	},

	"CreateSlot": {
		Name: "CreateSlot",
		Input: Shape{
			Required: []string{"botId", "botVersion", "localeId", "intentId", "slotName", "slotTypeId", "valueElicitationSetting"},
			Members: map[string]Member{
				"botId":                   memberString,
				"botVersion":              memberString,
				"localeId":                memberString,
				"intentId":                memberString,
				"slotName":                memberString,
				"slotTypeId":              memberString,
				"description":             memberString,
				"valueElicitationSetting": memberDocument,
				"obfuscationSetting":      memberDocument,
				"multipleValuesSetting":   memberDocument,
			},
		},
		Route: Route{Method: "PUT", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/intents/{intentId}/slots/"},
	},
	"UpdateSlot": {
		Name: "UpdateSlot",
		Input: Shape{
			Required: []string{"botId", "botVersion", "localeId", "intentId", "slotId", "slotName", "slotTypeId", "valueElicitationSetting"},
			Members: map[string]Member{
				"botId":                   memberString,
				"botVersion":              memberString,
				"localeId":                memberString,
				"intentId":                memberString,
				"slotId":                  memberString,
				"slotName":                memberString,
				"slotTypeId":              memberString,
				"description":             memberString,
				"valueElicitationSetting": memberDocument,
				"obfuscationSetting":      memberDocument,
				"multipleValuesSetting":   memberDocument,
			},
		},
		Route: Route{Method: "PUT", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/intents/{intentId}/slots/{slotId}/"},
	},
	"DeleteSlot": {
		Name: "DeleteSlot",
		Input: Shape{
			Required: []string{"botId", "botVersion", "localeId", "intentId", "slotId"},
			Members: map[string]Member{
				"botId":      memberString,
				"botVersion": memberString,
				"localeId":   memberString,
				"intentId":   memberString,
				"slotId":     memberString,
			},
		},
		Route: Route{Method: "DELETE", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/intents/{intentId}/slots/{slotId}/"},
	},
	"ListSlots": {
		Name:  "ListSlots",
		Input: listShape("botId", "botVersion", "localeId", "intentId"),
		Route: Route{Method: "POST", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/intents/{intentId}/slots/"},
	},

	"CreateSlotType": {
		Name: "CreateSlotType",
		Input: Shape{
			Required: []string{"botId", "botVersion", "localeId", "slotTypeName", "valueSelectionSetting"},
			Members: map[string]Member{
				"botId":                   memberString,
				"botVersion":              memberString,
				"localeId":                memberString,
				"slotTypeName":            memberString,
				"description":             memberString,
				"parentSlotTypeSignature": memberString,
				"slotTypeValues":          slotTypeValuesMember,
				"valueSelectionSetting":   valueSelectionSettingMember,
			},
		},
		Route: Route{Method: "PUT", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/slottypes/"},
	},
	"UpdateSlotType": {
		Name: "UpdateSlotType",
		Input: Shape{
			Required: []string{"botId", "botVersion", "localeId", "slotTypeId", "slotTypeName", "valueSelectionSetting"},
			Members: map[string]Member{
				"botId":                   memberString,
				"botVersion":              memberString,
				"localeId":                memberString,
				"slotTypeId":              memberString,
				"slotTypeName":            memberString,
				"description":             memberString,
				"parentSlotTypeSignature": memberString,
				"slotTypeValues":          slotTypeValuesMember,
				"valueSelectionSetting":   valueSelectionSettingMember,
			},
		},
		Route: Route{Method: "PUT", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/slottypes/{slotTypeId}/"},
	},
	"DeleteSlotType": {
		Name: "DeleteSlotType",
		Input: Shape{
			Required: []string{"botId", "botVersion", "localeId", "slotTypeId"},
			Members: map[string]Member{
				"botId":                  memberString,
				"botVersion":             memberString,
				"localeId":               memberString,
				"slotTypeId":             memberString,
				"skipResourceInUseCheck": memberBool,
			},
		},
		Route: Route{Method: "DELETE", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/slottypes/{slotTypeId}/"},
	},
	"ListSlotTypes": {
		Name:  "ListSlotTypes",
		Input: listShape("botId", "botVersion", "localeId"),
		Route: Route{Method: "POST", Path: "/bots/{botId}/botversions/{botVersion}/botlocales/{localeId}/slottypes/"},
	},

	"CreateBotVersion": {
		Name: "CreateBotVersion",
		Input: Shape{
			Required: []string{"botId", "botVersionLocaleSpecification"},
			Members: map[string]Member{
				"botId":                         memberString,
				"description":                   memberString,
				"botVersionLocaleSpecification": memberMap,
			},
		},
		Route: Route{Method: "PUT", Path: "/bots/{botId}/botversions/"},
	},
	"DeleteBotVersion": {
		Name: "DeleteBotVersion",
		Input: Shape{
			Required: []string{"botId", "botVersion"},
			Members: map[string]Member{
				"botId":                  memberString,
				"botVersion":             memberString,
				"skipResourceInUseCheck": memberBool,
			},
		},
		Route: Route{Method: "DELETE", Path: "/bots/{botId}/botversions/{botVersion}/"},
	},
	"DescribeBotVersion": {
		Name: "DescribeBotVersion",
		Input: Shape{
			Required: []string{"botId", "botVersion"},
			Members: map[string]Member{
				"botId":      memberString,
				"botVersion": memberString,
			},
		},
		Route: Route{Method: "GET", Path: "/bots/{botId}/botversions/{botVersion}/"},
	},

	"CreateBotAlias": {
		Name: "CreateBotAlias",
		Input: Shape{
			Required: []string{"botId", "botAliasName"},
			Members: map[string]Member{
				"botId":                     memberString,
				"botAliasName":              memberString,
				"botVersion":                memberString,
				"description":               memberString,
				"botAliasLocaleSettings":    memberMap,
				"conversationLogSettings":   memberDocument,
				"sentimentAnalysisSettings": memberDocument,
				"tags":                      memberMap,
			},
		},
		Route: Route{Method: "PUT", Path: "/bots/{botId}/botaliases/"},
	},
	"UpdateBotAlias": {
		Name: "UpdateBotAlias",
		Input: Shape{
			Required: []string{"botId", "botAliasId", "botAliasName"},
			Members: map[string]Member{
				"botId":                     memberString,
				"botAliasId":                memberString,
				"botAliasName":              memberString,
				"botVersion":                memberString,
				"description":               memberString,
				"botAliasLocaleSettings":    memberMap,
				"conversationLogSettings":   memberDocument,
				"sentimentAnalysisSettings": memberDocument,
			},
		},
		Route: Route{Method: "PUT", Path: "/bots/{botId}/botaliases/{botAliasId}/"},
	},
	"DeleteBotAlias": {
		Name: "DeleteBotAlias",
		Input: Shape{
			Required: []string{"botId", "botAliasId"},
			Members: map[string]Member{
				"botId":                  memberString,
				"botAliasId":             memberString,
				"skipResourceInUseCheck": memberBool,
			},
		},
		Route: Route{Method: "DELETE", Path: "/bots/{botId}/botaliases/{botAliasId}/"},
	},
	"DescribeBotAlias": {
		Name: "DescribeBotAlias",
		Input: Shape{
			Required: []string{"botId", "botAliasId"},
			Members: map[string]Member{
				"botId":      memberString,
				"botAliasId": memberString,
			},
		},
		Route: Route{Method: "GET", Path: "/bots/{botId}/botaliases/{botAliasId}/"},
	},
	"ListBotAliases": {
		Name: "ListBotAliases",
		Input: Shape{
			Required: []string{"botId"},
			Members: map[string]Member{
				"botId":      memberString,
				"maxResults": memberInteger,
				"nextToken":  memberString,
			},
		},
		Route: Route{Method: "POST", Path: "/bots/{botId}/botaliases/"},
	},
}
