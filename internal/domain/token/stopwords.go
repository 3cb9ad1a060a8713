package token

// stopWords is the fixed English+Polish stop-word set, union semantics: a match
// is dropped regardless of which language it came from. Words shorter than
// MinLength never reach the lookup, so only 3+ rune forms are listed.
var stopWords = map[string]bool{
	// English
	"the": true, "and": true, "are": true, "was": true, "were": true,
	"been": true, "being": true, "have": true, "has": true, "had": true,
	"does": true, "did": true, "doing": true, "for": true, "with": true,
	"from": true, "not": true, "but": true, "this": true, "that": true,
	"these": true, "those": true, "then": true, "than": true, "they": true,
	"them": true, "their": true, "there": true, "here": true, "where": true,
	"when": true, "what": true, "which": true, "who": true, "whom": true,
	"why": true, "how": true, "all": true, "any": true, "both": true,
	"each": true, "few": true, "more": true, "most": true, "other": true,
	"some": true, "such": true, "only": true, "own": true, "same": true,
	"too": true, "very": true, "can": true, "will": true, "just": true,
	"should": true, "could": true, "would": true, "into": true, "over": true,
	"under": true, "again": true, "once": true, "about": true, "against": true,
	"between": true, "through": true, "during": true, "before": true,
	"after": true, "above": true, "below": true, "out": true, "off": true,
	"down": true, "while": true, "because": true, "until": true, "since": true,
	"also": true, "you": true, "your": true, "yours": true, "his": true,
	"her": true, "hers": true, "its": true, "our": true, "ours": true,
	"she": true, "him": true, "itself": true, "himself": true, "herself": true,

	// Polish
	"się": true, "nie": true, "tak": true, "jak": true, "jest": true,
	"być": true, "był": true, "była": true, "było": true, "były": true,
	"będzie": true, "oraz": true, "ale": true, "lub": true, "czy": true,
	"dla": true, "przez": true, "przy": true, "bez": true, "pod": true,
	"nad": true, "między": true, "żeby": true, "aby": true, "gdy": true,
	"kiedy": true, "gdzie": true, "który": true, "która": true, "które": true,
	"których": true, "którym": true, "tego": true, "tej": true, "tym": true,
	"tych": true, "ten": true, "jego": true, "jej": true, "ich": true,
	"nas": true, "mnie": true, "sobie": true, "tylko": true,
	"także": true, "również": true, "bardzo": true, "może": true,
	"można": true, "mają": true, "miał": true, "miała": true, "już": true,
	"jeszcze": true, "teraz": true, "tutaj": true, "tam": true, "więc": true,
	"jednak": true, "natomiast": true, "ponieważ": true, "czyli": true,
	"niż": true, "ani": true, "albo": true, "coś": true, "wszystko": true,
	"wszystkie": true, "żaden": true, "żadna": true, "żadne": true,
}
