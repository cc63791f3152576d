package service

const productCardFields = `
  id
  handle
  title
  featuredImage { id url altText width height }
  priceRange {
    minVariantPrice { amount currencyCode }
    maxVariantPrice { amount currencyCode }
  }
`

const collectionQuery = `
query CollectionChunk($handle: String!, $first: Int, $last: Int, $after: String, $before: String) {
  collection(handle: $handle) {
    id
    handle
    title
    description
    products(first: $first, last: $last, after: $after, before: $before) {
      nodes {` + productCardFields + `}
      pageInfo { hasNextPage hasPreviousPage startCursor endCursor }
    }
  }
}`

const productQuery = `
query Product($handle: String!) {
  product(handle: $handle) {
    id
    handle
    title
    vendor
    descriptionHtml
    options { name values }
    priceRange {
      minVariantPrice { amount currencyCode }
      maxVariantPrice { amount currencyCode }
    }
    images(first: 50) {
      nodes { id url altText width height }
    }
    variants(first: 100) {
      nodes {
        id
        title
        availableForSale
        selectedOptions { name value }
        price { amount currencyCode }
        compareAtPrice { amount currencyCode }
        image { id url altText width height }
      }
    }
  }
}`

const recommendationsQuery = `
query Recommendations($handle: String!) {
  productRecommendations(productHandle: $handle) {` + productCardFields + `}
}`

const predictiveSearchQuery = `
query PredictiveSearch($query: String!, $limit: Int!) {
  predictiveSearch(query: $query, limit: $limit) {
    products {` + productCardFields + `}
    collections { id handle title }
    queries { text }
  }
}`

const menuQuery = `
query Menu($handle: String!) {
  menu(handle: $handle) {
    id
    handle
    items { ...MenuItemFields items { ...MenuItemFields items { ...MenuItemFields } } }
  }
}

fragment MenuItemFields on MenuItem {
  id
  title
  url
  type
  resourceId
  resource {
    ... on Product { availableForSale }
    ... on Collection { products(first: 1) { nodes { id } } }
    ... on Page { id }
    ... on Blog { id }
  }
}`

const cartFields = `
  id
  checkoutUrl
  totalQuantity
  cost {
    subtotalAmount { amount currencyCode }
    totalAmount { amount currencyCode }
  }
  lines(first: 100) {
    nodes {
      id
      quantity
      cost { totalAmount { amount currencyCode } }
      merchandise {
        ... on ProductVariant {
          id
          title
          product { title }
          image { id url altText width height }
        }
      }
    }
  }
`

const cartQuery = `
query Cart($id: ID!) {
  cart(id: $id) {` + cartFields + `}
}`

const cartCreateMutation = `
mutation CartCreate($lines: [CartLineInput!]) {
  cartCreate(input: { lines: $lines }) {
    cart {` + cartFields + `}
    userErrors { field message }
  }
}`

const cartLinesAddMutation = `
mutation CartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {` + cartFields + `}
    userErrors { field message }
  }
}`
