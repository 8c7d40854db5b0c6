package constant

const (
	// ClassifyPromptV1 asks the model to route raw input. Output is parsed
	// with a fence-tolerant JSON extractor, but the prompt still insists on
	// bare JSON because smaller models follow it most of the time.
	ClassifyPromptV1 = `You are the intake router of a personal knowledge base.

Analyze the user input and decide:
1. "intent": is the user trying to SAVE knowledge ("save_note") or ASK a question ("query_knowledge")?
2. "domain": which knowledge base does this belong to?
   - "spanish_learning": Spanish vocabulary, grammar, phrases, language study
   - "tech_knowledge": programming, software, systems, tools, engineering
   - "humanities": history, philosophy, art, literature, everything else
3. "confidence": 0.0 to 1.0, how sure you are about the domain.

User input:
"""
%s
"""

Output MUST be valid JSON and nothing else:
{"intent": "save_note", "domain": "tech_knowledge", "confidence": 0.9}`

	// DraftNewPromptV1 turns raw input into a structured note. The domain
	// instructions block is substituted per target knowledge base.
	DraftNewPromptV1 = `You are a knowledge synthesizer for a personal second brain.

Rewrite the raw input below into a clean, self-contained note.

%s

Raw input:
"""
%s
"""
%s
Output MUST be valid JSON and nothing else:
{"title": "...", "summary": "one or two sentences", "body": "markdown body", "tags": ["..."], "vocab": [{"word": "...", "meaning": "...", "example": "..."}]}

Omit "vocab" (or use an empty list) unless the domain instructions ask for it.`

	// DraftMergePromptV1 folds new input into an existing note of the same
	// knowledge base. The merged note must not lose existing content.
	DraftMergePromptV1 = `You are a knowledge synthesizer for a personal second brain.

An existing note covers the same topic as the new input. Merge them into ONE
updated note. Keep every fact from the existing note unless the new input
explicitly corrects it, then weave in the new material.

%s

Existing note:
"""
%s
"""

New input:
"""
%s
"""
%s
Output MUST be valid JSON and nothing else:
{"title": "...", "summary": "one or two sentences", "body": "markdown body", "tags": ["..."], "vocab": [{"word": "...", "meaning": "...", "example": "..."}]}`

	// Per-domain synthesis instructions.
	DomainInstructionsSpanishV1 = `Domain: Spanish learning.
Extract every Spanish word or phrase into the "vocab" list with its meaning
and one example sentence. The body should be a short study note; the vocab
list is the primary payload.`

	DomainInstructionsTechV1 = `Domain: technical knowledge.
Preserve exact identifiers, commands, version numbers and code snippets.
Use fenced code blocks in the body where appropriate.`

	DomainInstructionsHumanitiesV1 = `Domain: humanities.
Keep names, dates and places exact. Prefer a short narrative body with a
clear takeaway in the summary.`

	// ValidatorFeedbackBlockV1 is injected into a retry prompt after a draft
	// fails validation.
	ValidatorFeedbackBlockV1 = `
Your previous attempt was rejected: %s
Fix that problem in this attempt.
`
)
