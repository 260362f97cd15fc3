package memory

import (
	"context"

	"ailearn-quiz-service/internal/domain"
)

// StaticCatalogLoader serves the built-in AI glossary and question pool.
// Useful for local runs and tests; production deployments load the catalog
// from Postgres instead.
type StaticCatalogLoader struct {
	questions []domain.QuizQuestion
	glossary  []domain.GlossaryTerm
}

func NewStaticCatalogLoader(glossary []domain.GlossaryTerm, questions []domain.QuizQuestion) *StaticCatalogLoader {
	return &StaticCatalogLoader{questions: questions, glossary: glossary}
}

// NewDefaultCatalogLoader returns a loader over the shipped content.
func NewDefaultCatalogLoader() *StaticCatalogLoader {
	return NewStaticCatalogLoader(DefaultGlossary(), DefaultQuestions())
}

func (l *StaticCatalogLoader) LoadQuestions(_ context.Context) ([]domain.QuizQuestion, error) {
	return l.questions, nil
}

func (l *StaticCatalogLoader) LoadGlossary(_ context.Context) ([]domain.GlossaryTerm, error) {
	return l.glossary, nil
}

// DefaultGlossary is the shipped 16-term AI glossary. Keep
// app.TotalGlossaryTerms in sync with its length when editing.
func DefaultGlossary() []domain.GlossaryTerm {
	return []domain.GlossaryTerm{
		{
			ID:           "ai",
			Term:         "Artificial Intelligence",
			Definition:   "Computer systems that perform tasks normally requiring human intelligence, such as understanding language, recognizing patterns, and making decisions.",
			ExternalLink: "https://en.wikipedia.org/wiki/Artificial_intelligence",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "An umbrella term for the systems you integrate against; most shipped AI today is machine learning under the hood.",
				domain.RoleProduct:  "Frame AI features around the user problem they solve, not the technology itself.",
				domain.RoleBusiness: "AI adoption is a capability investment; returns come from workflow changes, not the model alone.",
			},
		},
		{
			ID:           "machine-learning",
			Term:         "Machine Learning",
			Definition:   "A subset of AI where systems learn patterns from data instead of following hand-written rules.",
			ExternalLink: "https://en.wikipedia.org/wiki/Machine_learning",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "Expect probabilistic outputs: the same input class can yield different predictions across model versions.",
				domain.RoleProduct:  "ML quality depends on data quality; plan feedback loops into the product.",
				domain.RoleBusiness: "ML projects need labeled data and iteration budgets, not just engineering time.",
			},
		},
		{
			ID:           "deep-learning",
			Term:         "Deep Learning",
			Definition:   "Machine learning built on multi-layer neural networks that learn hierarchical representations from large datasets.",
			ExternalLink: "https://en.wikipedia.org/wiki/Deep_learning",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "Training is GPU-bound and data-hungry; inference is where most application work happens.",
				domain.RoleProduct:  "Deep models excel at perception tasks: images, audio, and free-form text.",
				domain.RoleBusiness: "State-of-the-art accuracy usually means state-of-the-art compute costs.",
			},
		},
		{
			ID:           "neural-network",
			Term:         "Neural Network",
			Definition:   "A model composed of layers of connected nodes whose weighted links are adjusted during training to map inputs to outputs.",
			ExternalLink: "https://en.wikipedia.org/wiki/Artificial_neural_network",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "Weights are opaque; debug behavior with evaluation sets rather than by inspecting parameters.",
				domain.RoleProduct:  "Networks interpolate from training data; out-of-distribution inputs degrade quality silently.",
				domain.RoleBusiness: "The 'network' is an asset produced by training; it embodies the data it was trained on.",
			},
		},
		{
			ID:           "llm",
			Term:         "Large Language Model",
			Definition:   "A deep-learning model trained on vast text corpora to predict the next token, enabling fluent text understanding and generation.",
			ExternalLink: "https://en.wikipedia.org/wiki/Large_language_model",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "Treat outputs as untrusted: validate structure and never execute generated content blindly.",
				domain.RoleProduct:  "LLMs are general-purpose; differentiation comes from context, data, and workflow fit.",
				domain.RoleBusiness: "Per-token pricing makes costs usage-driven; forecast with realistic traffic models.",
			},
		},
		{
			ID:           "nlp",
			Term:         "Natural Language Processing",
			Definition:   "The field concerned with enabling computers to parse, understand, and generate human language.",
			ExternalLink: "https://en.wikipedia.org/wiki/Natural_language_processing",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "Classic NLP pipelines (tokenize, tag, parse) are increasingly replaced by single LLM calls.",
				domain.RoleProduct:  "Language features fail gracefully when you design for ambiguity up front.",
				domain.RoleBusiness: "NLP unlocks unstructured text: support tickets, contracts, call transcripts.",
			},
		},
		{
			ID:           "computer-vision",
			Term:         "Computer Vision",
			Definition:   "Techniques that let machines interpret and act on visual input such as images and video.",
			ExternalLink: "https://en.wikipedia.org/wiki/Computer_vision",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "Vision models are sensitive to lighting, resolution, and framing; test with production-like captures.",
				domain.RoleProduct:  "Confidence thresholds trade precision against recall; tune them per use case.",
				domain.RoleBusiness: "Vision automates inspection and monitoring tasks that previously required human review.",
			},
		},
		{
			ID:           "generative-ai",
			Term:         "Generative AI",
			Definition:   "Models that create new content — text, images, audio, code — rather than only classifying existing inputs.",
			ExternalLink: "https://en.wikipedia.org/wiki/Generative_artificial_intelligence",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "Generation is non-deterministic; pin seeds or temperatures where reproducibility matters.",
				domain.RoleProduct:  "Design review steps for generated content; users need control over what ships.",
				domain.RoleBusiness: "Generative tools shift effort from creation to curation and review.",
			},
		},
		{
			ID:           "prompt-engineering",
			Term:         "Prompt Engineering",
			Definition:   "Crafting and structuring model instructions to reliably elicit the desired behavior from a language model.",
			ExternalLink: "https://en.wikipedia.org/wiki/Prompt_engineering",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "Version prompts like code; small wording changes can shift output distributions.",
				domain.RoleProduct:  "Prompts encode product policy; review them like you review UX copy.",
				domain.RoleBusiness: "Good prompting often substitutes for expensive model customization.",
			},
		},
		{
			ID:           "fine-tuning",
			Term:         "Fine-tuning",
			Definition:   "Continuing a pre-trained model's training on a smaller, task-specific dataset to specialize its behavior.",
			ExternalLink: "https://en.wikipedia.org/wiki/Fine-tuning_(deep_learning)",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "Fine-tuning changes model weights; prompt changes do not. Budget for evaluation on both.",
				domain.RoleProduct:  "Reach for fine-tuning only after prompting and retrieval fall short.",
				domain.RoleBusiness: "Fine-tuned models are assets that need retraining as data drifts.",
			},
		},
		{
			ID:           "training-data",
			Term:         "Training Data",
			Definition:   "The examples a model learns from; its coverage and quality bound what the model can do.",
			ExternalLink: "https://en.wikipedia.org/wiki/Training,_validation,_and_test_data_sets",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "Keep train, validation, and test splits separate; leakage inflates every metric.",
				domain.RoleProduct:  "Biases in training data become biases in the product.",
				domain.RoleBusiness: "Proprietary data is the defensible moat in most AI products.",
			},
		},
		{
			ID:           "inference",
			Term:         "Inference",
			Definition:   "Running a trained model on new input to produce a prediction or generation; the serving side of machine learning.",
			ExternalLink: "https://en.wikipedia.org/wiki/Statistical_inference",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "Latency and throughput constraints live here; batch where the UX allows it.",
				domain.RoleProduct:  "Inference cost scales with usage, unlike training which is paid once per model.",
				domain.RoleBusiness: "Unit economics of AI features are dominated by inference spend.",
			},
		},
		{
			ID:           "hallucination",
			Term:         "Hallucination",
			Definition:   "Confident model output that is fabricated or unsupported by its inputs or training data.",
			ExternalLink: "https://en.wikipedia.org/wiki/Hallucination_(artificial_intelligence)",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "Ground responses in retrieved sources and surface citations so claims can be checked.",
				domain.RoleProduct:  "Design affordances that help users verify output instead of trusting it.",
				domain.RoleBusiness: "Hallucination risk determines which workflows can be automated without review.",
			},
		},
		{
			ID:           "embedding",
			Term:         "Embedding",
			Definition:   "A dense numeric vector representing text, images, or other data so that semantic similarity becomes geometric proximity.",
			ExternalLink: "https://en.wikipedia.org/wiki/Word_embedding",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "Embeddings from different models are not comparable; re-embed when you switch models.",
				domain.RoleProduct:  "Embeddings power semantic search and recommendations beyond keyword matching.",
				domain.RoleBusiness: "Vector search infrastructure is a recurring cost tied to corpus size.",
			},
		},
		{
			ID:           "rag",
			Term:         "Retrieval-Augmented Generation",
			Definition:   "Supplying a language model with retrieved documents at query time so its answers are grounded in current, domain-specific sources.",
			ExternalLink: "https://en.wikipedia.org/wiki/Retrieval-augmented_generation",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "Retrieval quality caps answer quality; evaluate the retriever separately from the generator.",
				domain.RoleProduct:  "RAG keeps answers current without retraining and enables source citations.",
				domain.RoleBusiness: "RAG lets you apply general models to private knowledge without sharing it for training.",
			},
		},
		{
			ID:           "agent",
			Term:         "AI Agent",
			Definition:   "A system that uses a model to plan and execute multi-step tasks, invoking tools and reacting to intermediate results.",
			ExternalLink: "https://en.wikipedia.org/wiki/Intelligent_agent",
			RoleContext: map[domain.Role]string{
				domain.RoleEngineer: "Constrain tool access and add step budgets; agents amplify both capability and failure modes.",
				domain.RoleProduct:  "Agent UX needs interruption, review, and undo; full autonomy rarely fits real workflows.",
				domain.RoleBusiness: "Agents target whole processes rather than single tasks, raising both upside and risk.",
			},
		},
	}
}

// DefaultQuestions is the shipped question pool, one question per glossary
// term.
func DefaultQuestions() []domain.QuizQuestion {
	return []domain.QuizQuestion{
		{
			ID:       "q-ai",
			Term:     "ai",
			Question: "What does Artificial Intelligence refer to?",
			Options: []string{
				"Computer systems performing tasks that normally require human intelligence",
				"A database optimized for large datasets",
				"A programming language for statistics",
				"Hardware designed for graphics rendering",
			},
			CorrectAnswer: "Computer systems performing tasks that normally require human intelligence",
			GlossaryLink:  "ai",
		},
		{
			ID:       "q-machine-learning",
			Term:     "machine-learning",
			Question: "How does machine learning differ from traditional programming?",
			Options: []string{
				"Systems learn patterns from data instead of following hand-written rules",
				"Programs run faster on modern hardware",
				"Code is written in a visual editor",
				"Rules are stored in a configuration file",
			},
			CorrectAnswer: "Systems learn patterns from data instead of following hand-written rules",
			GlossaryLink:  "machine-learning",
		},
		{
			ID:       "q-deep-learning",
			Term:     "deep-learning",
			Question: "What characterizes deep learning?",
			Options: []string{
				"Multi-layer neural networks learning hierarchical representations",
				"Decision trees with a single split",
				"Manually curated rule sets",
				"Keyword-based text search",
			},
			CorrectAnswer: "Multi-layer neural networks learning hierarchical representations",
			GlossaryLink:  "deep-learning",
		},
		{
			ID:       "q-neural-network",
			Term:     "neural-network",
			Question: "What happens to a neural network during training?",
			Options: []string{
				"The weights of its connections are adjusted to map inputs to outputs",
				"Its source code is rewritten automatically",
				"New servers are provisioned for each example",
				"Its outputs are cached permanently",
			},
			CorrectAnswer: "The weights of its connections are adjusted to map inputs to outputs",
			GlossaryLink:  "neural-network",
		},
		{
			ID:       "q-llm",
			Term:     "llm",
			Question: "What is a large language model fundamentally trained to do?",
			Options: []string{
				"Predict the next token over vast text corpora",
				"Translate between exactly two languages",
				"Compress documents losslessly",
				"Index web pages for search engines",
			},
			CorrectAnswer: "Predict the next token over vast text corpora",
			GlossaryLink:  "llm",
		},
		{
			ID:       "q-nlp",
			Term:     "nlp",
			Question: "What is natural language processing concerned with?",
			Options: []string{
				"Enabling computers to parse, understand, and generate human language",
				"Rendering fonts on screen",
				"Compiling programming languages",
				"Encrypting text messages",
			},
			CorrectAnswer: "Enabling computers to parse, understand, and generate human language",
			GlossaryLink:  "nlp",
		},
		{
			ID:       "q-computer-vision",
			Term:     "computer-vision",
			Question: "What does computer vision enable machines to do?",
			Options: []string{
				"Interpret and act on visual input such as images and video",
				"Generate synthetic speech",
				"Detect network intrusions",
				"Optimize database queries",
			},
			CorrectAnswer: "Interpret and act on visual input such as images and video",
			GlossaryLink:  "computer-vision",
		},
		{
			ID:       "q-generative-ai",
			Term:     "generative-ai",
			Question: "What distinguishes generative AI from classification models?",
			Options: []string{
				"It creates new content rather than only labeling existing inputs",
				"It requires no training data",
				"It only works on numeric inputs",
				"It always produces deterministic output",
			},
			CorrectAnswer: "It creates new content rather than only labeling existing inputs",
			GlossaryLink:  "generative-ai",
		},
		{
			ID:       "q-prompt-engineering",
			Term:     "prompt-engineering",
			Question: "What is prompt engineering?",
			Options: []string{
				"Crafting model instructions to reliably elicit the desired behavior",
				"Tuning GPU kernels for faster inference",
				"Labeling training examples by hand",
				"Designing database schemas for AI products",
			},
			CorrectAnswer: "Crafting model instructions to reliably elicit the desired behavior",
			GlossaryLink:  "prompt-engineering",
		},
		{
			ID:       "q-fine-tuning",
			Term:     "fine-tuning",
			Question: "What does fine-tuning a model involve?",
			Options: []string{
				"Continuing training on a smaller, task-specific dataset",
				"Rewriting the model in a faster language",
				"Reducing the model to a single layer",
				"Caching its most common answers",
			},
			CorrectAnswer: "Continuing training on a smaller, task-specific dataset",
			GlossaryLink:  "fine-tuning",
		},
		{
			ID:       "q-training-data",
			Term:     "training-data",
			Question: "Why does training data matter so much?",
			Options: []string{
				"Its coverage and quality bound what the model can learn to do",
				"It determines the programming language of the model",
				"It is only used for marketing benchmarks",
				"It replaces the need for evaluation",
			},
			CorrectAnswer: "Its coverage and quality bound what the model can learn to do",
			GlossaryLink:  "training-data",
		},
		{
			ID:       "q-inference",
			Term:     "inference",
			Question: "In machine learning, what is inference?",
			Options: []string{
				"Running a trained model on new input to produce an output",
				"Collecting training examples from users",
				"Backing up model weights to disk",
				"Summarizing logs for dashboards",
			},
			CorrectAnswer: "Running a trained model on new input to produce an output",
			GlossaryLink:  "inference",
		},
		{
			ID:       "q-hallucination",
			Term:     "hallucination",
			Question: "What is a hallucination in the context of language models?",
			Options: []string{
				"Confident output that is fabricated or unsupported by sources",
				"A visual artifact in generated images",
				"A crash caused by malformed input",
				"An intentionally randomized response mode",
			},
			CorrectAnswer: "Confident output that is fabricated or unsupported by sources",
			GlossaryLink:  "hallucination",
		},
		{
			ID:       "q-embedding",
			Term:     "embedding",
			Question: "What is an embedding?",
			Options: []string{
				"A numeric vector where semantic similarity becomes geometric proximity",
				"A compressed archive of model weights",
				"A hyperlink inside generated text",
				"A database index on text columns",
			},
			CorrectAnswer: "A numeric vector where semantic similarity becomes geometric proximity",
			GlossaryLink:  "embedding",
		},
		{
			ID:       "q-rag",
			Term:     "rag",
			Question: "How does retrieval-augmented generation ground a model's answers?",
			Options: []string{
				"By supplying retrieved documents to the model at query time",
				"By retraining the model nightly",
				"By restricting output to yes/no answers",
				"By lowering the sampling temperature to zero",
			},
			CorrectAnswer: "By supplying retrieved documents to the model at query time",
			GlossaryLink:  "rag",
		},
		{
			ID:       "q-agent",
			Term:     "agent",
			Question: "What makes a system an AI agent?",
			Options: []string{
				"It plans and executes multi-step tasks, invoking tools along the way",
				"It answers a single question per request",
				"It runs entirely on the client device",
				"It stores conversation history in a database",
			},
			CorrectAnswer: "It plans and executes multi-step tasks, invoking tools along the way",
			GlossaryLink:  "agent",
		},
	}
}
